package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server              ServerConfig
	Database            DatabaseConfig
	Redis               RedisConfig
	Kafka               KafkaConfig
	NotificationService ServiceConfig
	Pricing             PricingConfig
	Features            FeatureFlags
}

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
	CartTTL  time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	OrdersTopic   string
	MenuTopic     string
	ConsumerGroup string
}

type ServiceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PricingConfig holds the values the calculator needs besides the menu.
type PricingConfig struct {
	ExpressSurcharge int
	DeliveryETA      string
}

type FeatureFlags struct {
	EnableOrderEvents     bool
	EnableOrderCaching    bool
	EnableNotifications   bool
	EnableMenuUpdates     bool
	StrictFieldValidation bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnvInt("SERVER_PORT", 8082),
			ReadTimeout:    time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout:   time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5500"}),
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "chaigali"),
			Password:     getEnvString("DB_PASSWORD", "chaigali"),
			Name:         getEnvString("DB_NAME", "chai_gali"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_ORDER_TTL", 5*time.Minute),
			CartTTL:  getEnvDuration("REDIS_CART_TTL", 7*24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			OrdersTopic:   getEnvString("KAFKA_ORDERS_TOPIC", "chai-gali.orders"),
			MenuTopic:     getEnvString("KAFKA_MENU_TOPIC", "chai-gali.menu"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "orders-service"),
		},
		NotificationService: ServiceConfig{
			BaseURL: getEnvString("NOTIFICATION_SERVICE_URL", "http://localhost:8085"),
			APIKey:  getEnvString("NOTIFICATION_SERVICE_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("NOTIFICATION_SERVICE_TIMEOUT", 10)) * time.Second,
		},
		Pricing: PricingConfig{
			ExpressSurcharge: getEnvInt("PRICING_EXPRESS_SURCHARGE", 20),
			DeliveryETA:      getEnvString("PRICING_DELIVERY_ETA", "15-20 minutes"),
		},
		Features: FeatureFlags{
			EnableOrderEvents:     getEnvBool("FEATURE_ORDER_EVENTS", true),
			EnableOrderCaching:    getEnvBool("FEATURE_ORDER_CACHING", true),
			EnableNotifications:   getEnvBool("FEATURE_NOTIFICATIONS", false),
			EnableMenuUpdates:     getEnvBool("FEATURE_MENU_UPDATES", true),
			StrictFieldValidation: getEnvBool("FEATURE_STRICT_FIELD_VALIDATION", false),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
