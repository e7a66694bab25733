package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()

	prev := Base()
	core, logs := observer.New(level)
	SetBase(zap.New(core))
	t.Cleanup(func() { SetBase(prev) })
	return logs
}

func TestLoggerV2_NamedWithFields(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	NewLoggerV2("order-service").Info("Order placed", Fields{"order_id": "ord_1", "total": 130})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "order-service", entries[0].LoggerName)
	assert.Equal(t, "Order placed", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "ord_1", ctx["order_id"])
	assert.EqualValues(t, 130, ctx["total"])
}

func TestLoggerV2_Levels(t *testing.T) {
	logs := observe(t, zapcore.WarnLevel)
	l := NewLoggerV2("cart-store")

	l.Debug("skipped")
	l.Info("skipped")
	l.Warn("Cart retry", Fields{"attempt": 2})
	l.Error("Cart update failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestPackageLevelInfo(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Info("Starting service", Fields{"port": 8080})
	Infof("Listening on :%d", 8080)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].LoggerName)
	assert.Equal(t, "Listening on :8080", entries[1].Message)
}

func TestNilLoggerUsesBase(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	var l *LoggerV2
	l.Info("no component")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].LoggerName)
}
