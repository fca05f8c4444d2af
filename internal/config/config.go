package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/velostore/storefront/pkg/config"
)

// Store backends.
const (
	StoreBackendFile  = "file"
	StoreBackendRedis = "redis"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Backend product API
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`

	// Client state persistence
	StoreBackend string        `env:"STORE_BACKEND" envDefault:"file"`
	StateDir     string        `env:"STATE_DIR" envDefault:"./data"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	CartTTL      time.Duration `env:"CART_TTL" envDefault:"720h"`

	// Cart event publishing
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreBackendFile, StoreBackendRedis:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendFile, StoreBackendRedis, c.StoreBackend)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("CART_TTL must be positive, got %s", c.CartTTL)
	}
	return nil
}
