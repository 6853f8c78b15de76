package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Storage backends for the cart state.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all configuration for the storefront process.
type Config struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort      int    `env:"HTTP_PORT" envDefault:"8080"`
	AllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`

	// Cart persistence. The file backend keeps a JSON state file per device;
	// the redis backend is for deployments without a durable disk.
	CartStorageBackend string `env:"CART_STORAGE_BACKEND" envDefault:"file"`
	CartStateDir       string `env:"CART_STATE_DIR" envDefault:".aur"`
	DeviceID           string `env:"DEVICE_ID" envDefault:""`
	RedisAddr          string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass          string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	CartTTLHours       int    `env:"CART_TTL_HOURS" envDefault:"168"`

	// Managed signup database (REST gateway URL and anon key).
	SignupAPIURL string `env:"SIGNUP_API_URL" envDefault:""`
	SignupAPIKey string `env:"SIGNUP_API_KEY" envDefault:""`

	// Mailing-list provider.
	MailerliteAPIURL  string `env:"MAILERLITE_API_URL" envDefault:"https://api.mailerlite.com"`
	MailerliteAPIKey  string `env:"MAILERLITE_API_KEY" envDefault:""`
	MailerliteGroupID string `env:"MAILERLITE_JEWELER_WAITLIST_GROUP_ID" envDefault:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.CartStorageBackend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("invalid cart storage backend: %q", c.CartStorageBackend)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("invalid cart TTL: %d hours", c.CartTTLHours)
	}
	return nil
}
