package api

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-greeter-api/internal/platform/observability"
)

// StoreDriver selects the greeting store implementation.
type StoreDriver string

const (
	StoreDriverMongo    StoreDriver = "mongo"
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverMemory   StoreDriver = "memory"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	StoreDriver   StoreDriver `envconfig:"STORE_DRIVER" default:"mongo"`
	StoreURI      string      `envconfig:"STORE_URI" default:"mongodb://localhost:27017/"`
	StoreDatabase string      `envconfig:"STORE_DATABASE" default:"greeter"`
	PostgresDSN   string      `envconfig:"POSTGRES_DSN" default:""`

	BindHost string `envconfig:"BIND_HOST" default:"localhost"`
	BindPort int    `envconfig:"BIND_PORT" default:"8001"`

	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	TemporalEnabled   bool   `envconfig:"TEMPORAL_ENABLED" default:"false"`
	TemporalAddress   string `envconfig:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `envconfig:"TEMPORAL_NAMESPACE"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.TemporalAddress) == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if strings.TrimSpace(cfg.TemporalNamespace) == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	cfg.StoreDriver = StoreDriver(strings.ToLower(strings.TrimSpace(string(cfg.StoreDriver))))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMongo:
		if strings.TrimSpace(c.StoreURI) == "" {
			return fmt.Errorf("STORE_URI is required for the mongo store")
		}
		if strings.TrimSpace(c.StoreDatabase) == "" {
			return fmt.Errorf("STORE_DATABASE is required for the mongo store")
		}
	case StoreDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of mongo, postgres, memory (got %q)", c.StoreDriver)
	}
	if c.BindPort < 1 || c.BindPort > 65535 {
		return fmt.Errorf("BIND_PORT must be between 1 and 65535 (got %d)", c.BindPort)
	}
	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Addr is the listen address built from bind host and port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.BindHost, strconv.Itoa(c.BindPort))
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() slog.Level {
	level, err := observability.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
