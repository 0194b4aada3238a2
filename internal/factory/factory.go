package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/playerregistry/internal/config"
	"github.com/mcoot/playerregistry/internal/dependencies/clock"
	"github.com/mcoot/playerregistry/internal/seed"
	"github.com/mcoot/playerregistry/internal/services/player"
	"github.com/mcoot/playerregistry/internal/storage"
	"github.com/mcoot/playerregistry/internal/storage/memory"
	pgstorage "github.com/mcoot/playerregistry/internal/storage/postgres"
	redisstorage "github.com/mcoot/playerregistry/internal/storage/redis"
	sqlitestorage "github.com/mcoot/playerregistry/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	PlayerService *player.Service

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend (see config.StorageTypes)
	// If empty, defaults to memory
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is redis)
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is sqlite)
	SQLitePath string
	// PostgresConfig holds pool settings (required if StorageType is postgres)
	PostgresConfig *pgstorage.Config
	// TracerProvider receives the service spans (optional)
	// If nil, the global provider is used
	TracerProvider trace.TracerProvider
}

// ConfigFromEnv translates the server configuration into factory settings
func ConfigFromEnv(cfg config.Config, logger *slog.Logger) Config {
	fc := Config{
		Logger:      logger,
		StorageType: cfg.Storage,
		SQLitePath:  cfg.SQLitePath,
	}
	switch cfg.Storage {
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.KeyPrefix = cfg.RedisKeyPrefix
		fc.RedisConfig = &redisCfg
	case config.StoragePostgres:
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.URL = cfg.PostgresURL
		fc.PostgresConfig = &pgCfg
	}
	return fc
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageMemory
	}

	switch storageType {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case config.StorageSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case config.StoragePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := pgstorage.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be one of %v", storageType, config.StorageTypes)
	}

	logger.Info("storage ready", slog.String("type", storageType))

	return newWithDependencies(store, clock.New(), logger, cfg.TracerProvider), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger, tp trace.TracerProvider) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		PlayerService: player.New(store, logger, tp),
		logger:        logger,
	}
}

// SeedIfEmpty creates count generated players when the store holds none.
// It returns the number of players created.
func (a *App) SeedIfEmpty(ctx context.Context, count int, seedValue uint64) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	existing, err := a.Storage.ListPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("check store before seeding: %w", err)
	}
	if len(existing) > 0 {
		a.logger.Info("store not empty, skipping seed", slog.Int("players", len(existing)))
		return 0, nil
	}

	gen := seed.New(a.Clock, seedValue)
	n, err := seed.Populate(ctx, a.PlayerService, gen, count)
	a.logger.Info("seeded players", slog.Int("count", n), slog.Uint64("seed", gen.Seed()))
	return n, err
}

// Close releases the storage backend if it holds resources
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
