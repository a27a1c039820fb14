package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`

	// Storage. STORAGE_DRIVER is "mongo" or "memory"; BOOKING_STORE may move
	// bookings alone to "postgres".
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	BookingStore  string `mapstructure:"BOOKING_STORE"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`
	PostgresURL   string `mapstructure:"POSTGRES_URL"`

	// Redis configuration.
	RedisAddr                   string `mapstructure:"REDIS_ADDR"`
	RedisPassword               string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB                int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB                int    `mapstructure:"REDIS_QUEUE_DB"`
	AvailabilityCacheTTLSeconds int    `mapstructure:"AVAILABILITY_CACHE_TTL_SECONDS"`

	// Notifications.
	NotifyDrivers        string `mapstructure:"NOTIFY_DRIVERS"`
	NotifyWebhookURL     string `mapstructure:"NOTIFY_WEBHOOK_URL"`
	NotifyTimeoutSeconds int    `mapstructure:"NOTIFY_TIMEOUT_SECONDS"`
	KafkaBrokers         string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic           string `mapstructure:"KAFKA_TOPIC"`
	ReminderLeadMinutes  int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	WorkerConcurrency    int    `mapstructure:"WORKER_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("STORAGE_DRIVER", "mongo")
	viper.SetDefault("BOOKING_STORE", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "bookly")
	viper.SetDefault("POSTGRES_URL", "postgres://localhost:5432/bookly?sslmode=disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("AVAILABILITY_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("NOTIFY_DRIVERS", "log")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 5)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "booking-events")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("WORKER_CONCURRENCY", 10)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMemoryStorage reports whether every store runs in-process.
func UsesMemoryStorage() bool {
	return strings.EqualFold(AppConfig.StorageDriver, "memory")
}

// NotifyDriverList splits NOTIFY_DRIVERS into lowercased driver names.
func NotifyDriverList() []string {
	return splitList(strings.ToLower(AppConfig.NotifyDrivers))
}

// KafkaBrokerList splits KAFKA_BROKERS on commas.
func KafkaBrokerList() []string {
	return splitList(AppConfig.KafkaBrokers)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
