package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/playerregistry/internal/api"
	"github.com/mcoot/playerregistry/internal/api/middleware"
	"github.com/mcoot/playerregistry/internal/config"
	"github.com/mcoot/playerregistry/internal/factory"
	"github.com/mcoot/playerregistry/internal/server"
	"github.com/mcoot/playerregistry/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	tp, shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("flushing spans", slog.String("error", err.Error()))
		}
	}()

	fc := factory.ConfigFromEnv(cfg, logger)
	fc.TracerProvider = tp
	app, err := factory.New(ctx, fc)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("closing storage", slog.String("error", err.Error()))
		}
	}()

	if cfg.SeedCount > 0 {
		if _, err := app.SeedIfEmpty(ctx, cfg.SeedCount, cfg.SeedValue); err != nil {
			return err
		}
	}

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	handler := server.NewHandler(server.Config{
		Logger:         logger,
		PlayerService:  app.PlayerService,
		AdminTokenHash: cfg.AdminTokenHash,
		RateLimiter:    limiter,
	})

	srv := api.NewServer(handler, api.ServerConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	return srv.Run(ctx)
}
