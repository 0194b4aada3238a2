// Package config loads the server configuration from PLAYERS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// StorageTypes lists every accepted PLAYERS_STORAGE value
var StorageTypes = []string{StorageMemory, StorageRedis, StorageSQLite, StoragePostgres}

// Tracing exporters
const (
	TracingNone   = "none"
	TracingStdout = "stdout"
)

// TracingExporters lists every accepted PLAYERS_TRACING value
var TracingExporters = []string{TracingNone, TracingStdout}

// Config is the server configuration
type Config struct {
	Host     string     `env:"PLAYERS_HOST"`
	Port     int        `env:"PLAYERS_PORT" envDefault:"8080"`
	LogLevel slog.Level `env:"PLAYERS_LOG_LEVEL" envDefault:"INFO"`

	ReadTimeout     time.Duration `env:"PLAYERS_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"PLAYERS_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"PLAYERS_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Storage        string `env:"PLAYERS_STORAGE" envDefault:"memory"`
	RedisURL       string `env:"PLAYERS_REDIS_URL"`
	RedisKeyPrefix string `env:"PLAYERS_REDIS_KEY_PREFIX" envDefault:"players"`
	SQLitePath     string `env:"PLAYERS_SQLITE_PATH" envDefault:"players.db"`
	PostgresURL    string `env:"PLAYERS_POSTGRES_URL"`

	// AdminTokenHash is a bcrypt hash (see playerctl hash-token). Empty
	// leaves mutating routes open.
	AdminTokenHash string `env:"PLAYERS_ADMIN_TOKEN_HASH"`

	// RateLimit is requests per second per client IP; 0 disables limiting
	RateLimit float64 `env:"PLAYERS_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"PLAYERS_RATE_BURST" envDefault:"20"`

	// SeedCount generated players are created at startup when the store is empty
	SeedCount int    `env:"PLAYERS_SEED_COUNT" envDefault:"0"`
	SeedValue uint64 `env:"PLAYERS_SEED" envDefault:"0"`

	// Tracing selects the span exporter; "none" leaves tracing off
	Tracing string `env:"PLAYERS_TRACING" envDefault:"none"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints the env tags cannot express
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PLAYERS_PORT %d out of range", c.Port))
	}
	if !slices.Contains(StorageTypes, c.Storage) {
		errs = append(errs, fmt.Errorf("PLAYERS_STORAGE %q must be one of %v", c.Storage, StorageTypes))
	}
	if c.Storage == StorageRedis && c.RedisURL == "" {
		errs = append(errs, errors.New("PLAYERS_REDIS_URL required when PLAYERS_STORAGE=redis"))
	}
	if c.Storage == StorageSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("PLAYERS_SQLITE_PATH required when PLAYERS_STORAGE=sqlite"))
	}
	if c.Storage == StoragePostgres && c.PostgresURL == "" {
		errs = append(errs, errors.New("PLAYERS_POSTGRES_URL required when PLAYERS_STORAGE=postgres"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("PLAYERS_RATE_LIMIT must not be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, errors.New("PLAYERS_RATE_BURST must be at least 1 when rate limiting"))
	}
	if !slices.Contains(TracingExporters, c.Tracing) {
		errs = append(errs, fmt.Errorf("PLAYERS_TRACING %q must be one of %v", c.Tracing, TracingExporters))
	}
	if c.SeedCount < 0 {
		errs = append(errs, errors.New("PLAYERS_SEED_COUNT must not be negative"))
	}
	return errors.Join(errs...)
}
