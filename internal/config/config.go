package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Auth        AuthConfig
	Referrals   ReferralConfig
	Vendor      VendorConfig
	Store       StoreConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret     string
	AllowMockAuth bool
}

// ReferralConfig tunes link issuance, resolution and the status machine.
type ReferralConfig struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
	IdempotencyTTL  time.Duration
	// GuardRewarded stops a late "complete" event from moving a rewarded
	// referral back to complete.
	GuardRewarded bool
	ProfilesFile  string
}

// VendorConfig holds the deep link vendor settings. An empty APIURL means
// links are minted locally.
type VendorConfig struct {
	APIURL        string
	APIKey        string
	WebhookSecret string
	LinkBaseURL   string
	LinkTTL       time.Duration
}

type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig holds Kafka/event streaming configuration. No brokers means
// domain events are not published.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	VendorEventsTopic string
	ConsumerGroup     string
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{Environment: getEnvWithDefault("GO_ENV", "development")}

	var err error
	if cfg.Server.Port, err = getIntEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.Server.WebAppURI = os.Getenv("WEBAPP_URI")

	// Auth configuration
	if cfg.IsProduction() {
		if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
			return nil, err
		}
	} else {
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.Auth.AllowMockAuth, err = getBoolEnv("ALLOW_MOCK_AUTH", !cfg.IsProduction()); err != nil {
		return nil, err
	}
	if cfg.IsProduction() && cfg.Auth.AllowMockAuth {
		return nil, errors.New("ALLOW_MOCK_AUTH cannot be enabled in production")
	}

	// Referral configuration
	if cfg.Referrals.RateLimitMax, err = getIntEnv("RATE_LIMIT_MAX", 5); err != nil {
		return nil, err
	}
	if cfg.Referrals.RateLimitWindow, err = getDurationEnv("RATE_LIMIT_WINDOW", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Referrals.IdempotencyTTL, err = getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Referrals.GuardRewarded, err = getBoolEnv("REFERRAL_GUARD_REWARDED", false); err != nil {
		return nil, err
	}
	cfg.Referrals.ProfilesFile = os.Getenv("PROFILES_FILE")

	// Vendor configuration
	if cfg.Vendor.WebhookSecret, err = requireEnv("VENDOR_WEBHOOK_SECRET"); err != nil {
		return nil, err
	}
	cfg.Vendor.APIURL = strings.TrimRight(os.Getenv("VENDOR_API_URL"), "/")
	cfg.Vendor.APIKey = os.Getenv("VENDOR_API_KEY")
	if cfg.Vendor.APIURL != "" && cfg.Vendor.APIKey == "" {
		return nil, fmt.Errorf("VENDOR_API_KEY is required with VENDOR_API_URL: %w", ErrEmptyEnvironmentVariable)
	}
	cfg.Vendor.LinkBaseURL = strings.TrimRight(getEnvWithDefault("DEEPLINK_BASE_URL", "https://cartoncaps.link"), "/")
	if cfg.Vendor.LinkTTL, err = getDurationEnv("DEEPLINK_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}

	// Store configuration
	cfg.Store.Driver = getEnvWithDefault("STORE_DRIVER", StoreDriverMemory)
	switch cfg.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
			return nil, err
		}
		if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
			return nil, err
		}
		if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
			return nil, err
		}
		if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	// Redis configuration
	if cfg.Redis.Enabled, err = getBoolEnv("REDIS_ENABLED", false); err != nil {
		return nil, err
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = getIntEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getIntEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Kafka configuration
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "referral-events")
	cfg.Kafka.VendorEventsTopic = getEnvWithDefault("KAFKA_VENDOR_EVENTS_TOPIC", "deeplink-vendor-events")
	cfg.Kafka.ConsumerGroup = getEnvWithDefault("KAFKA_CONSUMER_GROUP", "referral-vendor-events")

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// Addr returns host:port for the Redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return parsed, nil
}
