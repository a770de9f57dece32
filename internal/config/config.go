// Package config manages environment-driven configuration.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, and
// validates that required values are present so the application fails
// fast on bad or missing config.
//
// Env vars use the FARMCRM_ prefix with "__" separating nesting levels,
// e.g. FARMCRM_DATABASE__URL -> database.url -> Config.Database.URL.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process
	// environment before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FARMCRM_"

// Config is the root configuration object for the data-access layer.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and to switch behavior (SQL trace logging is only
// enabled in the "local" env).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format, "json" or "console".
	Format string `koanf:"format"`
}

// DatabaseConfig contains the PostgreSQL connection string and pool
// tuning options.
//
// The pool options keep the vocabulary of the upstream CRM deployment:
//
//   - PoolSize is the number of sessions kept ready (pgxpool MinConns).
//   - MaxOverflow is how many extra sessions may be opened on demand;
//     PoolSize+MaxOverflow becomes pgxpool MaxConns.
//   - PoolRecycle is the max lifetime of a connection before it is
//     replaced (pgxpool MaxConnLifetime).
//   - PoolPrePing validates a connection with a ping each time it is
//     handed out.
type DatabaseConfig struct {
	URL         string        `koanf:"url" validate:"required"`
	PoolSize    int           `koanf:"pool_size"`
	MaxOverflow int           `koanf:"max_overflow"`
	PoolRecycle time.Duration `koanf:"pool_recycle"`
	PoolPrePing bool          `koanf:"pool_pre_ping"`
	PingTimeout time.Duration `koanf:"ping_timeout"`
}

// Load reads configuration from the environment, unmarshals it into
// Config, validates it, and applies defaults for optional blocks.
func Load() (*Config, error) {
	k := koanf.New(".")

	// "__" in env var names marks nesting, so keys like pool_size keep
	// their single underscore: FARMCRM_DATABASE__POOL_SIZE -> database.pool_size.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills optional settings that were not provided.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		if c.Primary.Env == "production" {
			c.Logging.Level = "info"
		} else {
			c.Logging.Level = "debug"
		}
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Database.PoolSize <= 0 {
		c.Database.PoolSize = 5
	}
	if c.Database.MaxOverflow < 0 {
		c.Database.MaxOverflow = 0
	}
	if c.Database.PoolRecycle <= 0 {
		c.Database.PoolRecycle = 30 * time.Minute
	}
	if c.Database.PingTimeout <= 0 {
		c.Database.PingTimeout = 10 * time.Second
	}
}

// Validate applies rules that go beyond struct tags.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Logging.Format)
	}

	return nil
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
