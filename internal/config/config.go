// Package config loads command settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name, e.g. POPCACHE_CAPACITY.
const Prefix = "POPCACHE_"

// ErrInvalidConfig is returned when loaded values are out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables shared by the commands. Flags may override it.
type Config struct {
	Name     string `env:"NAME" envDefault:"bench"`
	Capacity int    `env:"CAPACITY" envDefault:"100000"`
	Policy   string `env:"POLICY" envDefault:"lru"`

	Workers  int           `env:"WORKERS" envDefault:"0"`
	Duration time.Duration `env:"DURATION" envDefault:"10s"`
	ReadPct  int           `env:"READ_PCT" envDefault:"80"`
	Keys     int           `env:"KEYS" envDefault:"1000000"`
	LoadCost time.Duration `env:"LOAD_COST" envDefault:"0s"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":8080"`
	PprofAddr   string `env:"PPROF_ADDR"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file from the working directory, then parses
// POPCACHE_* variables into a Config.
func Load() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that the environment parser cannot express.
func (c Config) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	case c.Capacity < 0:
		return fmt.Errorf("%w: capacity must be >= 0, got %d", ErrInvalidConfig, c.Capacity)
	case c.ReadPct < 0 || c.ReadPct > 100:
		return fmt.Errorf("%w: read percentage must be in [0..100], got %d", ErrInvalidConfig, c.ReadPct)
	case c.Keys < 1:
		return fmt.Errorf("%w: keyspace must be >= 1, got %d", ErrInvalidConfig, c.Keys)
	case c.Policy != "lru" && c.Policy != "2q":
		return fmt.Errorf("%w: unknown policy %q (use lru or 2q)", ErrInvalidConfig, c.Policy)
	}
	return nil
}
