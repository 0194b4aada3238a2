// Package server assembles the combined JSON API and HTML handler.
package server

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/playerregistry/internal/api"
	"github.com/mcoot/playerregistry/internal/api/middleware"
	"github.com/mcoot/playerregistry/internal/services/player"
	"github.com/mcoot/playerregistry/internal/web"
)

// Config holds the dependencies of the combined handler
type Config struct {
	Logger         *slog.Logger
	PlayerService  *player.Service
	AdminTokenHash string
	RateLimiter    *middleware.IPRateLimiter
}

// NewHandler routes /ui to the HTML views and everything else to the API
func NewHandler(cfg Config) http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         cfg.Logger,
		PlayerService:  cfg.PlayerService,
		AdminTokenHash: cfg.AdminTokenHash,
		RateLimiter:    cfg.RateLimiter,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:        cfg.Logger,
		PlayerService: cfg.PlayerService,
	})

	mux := http.NewServeMux()
	mux.Handle("/ui", webRouter)
	mux.Handle("/ui/", webRouter)
	mux.Handle("/", apiRouter)
	return mux
}
