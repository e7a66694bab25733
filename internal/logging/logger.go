package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// Fields carries structured key/value pairs for a log entry.
type Fields map[string]interface{}

var (
	baseOnce sync.Once
	base     *zap.Logger
)

// Base returns the process-wide zap logger, building it on first use.
func Base() *zap.Logger {
	baseOnce.Do(func() {
		l, err := newZapLogger()
		if err != nil {
			l = zap.NewNop()
		}
		base = l
	})
	return base
}

// SetBase replaces the process-wide logger. Tests use it with an observer core.
func SetBase(l *zap.Logger) {
	baseOnce.Do(func() {})
	base = l
}

func newZapLogger() (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLogLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:   "message",
		TimeKey:      "timestamp",
		LevelKey:     "severity",
		NameKey:      "component",
		CallerKey:    "caller",
		EncodeTime:   zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	return cfg.Build()
}

// LoggerV2 is a named structured logger.
type LoggerV2 struct {
	name string
}

// NewLoggerV2 creates a logger tagged with the given component name.
func NewLoggerV2(name string) *LoggerV2 {
	return &LoggerV2{name: name}
}

func (l *LoggerV2) core() *zap.Logger {
	if l == nil {
		return Base()
	}
	return Base().Named(l.name)
}

func (l *LoggerV2) Debug(msg string, fields ...Fields) {
	l.core().Debug(msg, toZap(fields)...)
}

func (l *LoggerV2) Info(msg string, fields ...Fields) {
	l.core().Info(msg, toZap(fields)...)
}

func (l *LoggerV2) Warn(msg string, fields ...Fields) {
	l.core().Warn(msg, toZap(fields)...)
}

func (l *LoggerV2) Error(msg string, fields ...Fields) {
	l.core().Error(msg, toZap(fields)...)
}

// Fatal logs and exits the process.
func (l *LoggerV2) Fatal(msg string, fields ...Fields) {
	l.core().Fatal(msg, toZap(fields)...)
}

// Info logs through the base logger without a component name.
func Info(msg string, fields ...Fields) {
	Base().Info(msg, toZap(fields)...)
}

// Infof is the printf-style entry point kept for short operational messages.
func Infof(format string, args ...interface{}) {
	Base().Sugar().Infof(format, args...)
}

func toZap(fields []Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields[0]))
	for _, f := range fields {
		for k, v := range f {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
