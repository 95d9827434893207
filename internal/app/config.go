package app

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const testModeEnv = "CLIENTES_TEST_MODE"

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv             string        `envconfig:"APP_ENV" default:"development"`
	AppAddr            string        `envconfig:"APP_ADDR" default:":3000"`
	AppReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout  time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	AppShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	EventsChannel string `envconfig:"EVENTS_CHANNEL" default:"clientes.events"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.AppAddr == "" {
		return nil, errors.New("app address must be provided")
	}
	if cfg.RateLimitPerMinute < 0 {
		return nil, errors.New("rate limit must not be negative")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// EventsEnabled reports whether change events should be published to Redis.
func (c *Config) EventsEnabled() bool {
	return c != nil && c.RedisAddr != ""
}

// InTestMode reports whether the process runs under go test and should skip
// binding ports or dialing Redis.
func InTestMode() bool {
	return os.Getenv(testModeEnv) == "1"
}
