// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the shelf service.
// Environment variables are parsed from the SHELFD_ prefix,
// e.g. SHELFD_HTTP_PORT, SHELFD_STORE_DRIVER.
type Config struct {
	// StoreDriver selects the store backend: memory, sqlite or postgres.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SQLite Configuration
	DataDir    string `envconfig:"DATA_DIR" default:"./data"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Health Configuration
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"15"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the store driver and derives driver-specific
// settings left at their zero value.
func (c *Config) ResolveDefaults() error {
	switch c.StoreDriver {
	case "memory":
		// nothing to derive
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = filepath.Join(c.DataDir, "shelfd.db")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("SHELFD_POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	if c.HealthIntervalSeconds <= 0 {
		return fmt.Errorf("SHELFD_HEALTH_INTERVAL_SECONDS must be positive")
	}
	return nil
}

// New creates a Config by parsing SHELFD_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SHELFD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("store_driver", cfg.StoreDriver).
		Int("port", cfg.HTTPPort).
		Str("sqlite_path", cfg.SQLitePath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Msg("configuration loaded")

	return &cfg, nil
}
