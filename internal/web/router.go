package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	shared "github.com/mcoot/playerregistry/internal/middleware"
	"github.com/mcoot/playerregistry/internal/services/player"
	"github.com/mcoot/playerregistry/internal/web/handler"
	"github.com/mcoot/playerregistry/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *player.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(shared.RequestID())
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(shared.Metrics())

	playersHandler := handler.NewPlayersHandler(cfg.PlayerService, cfg.Logger)

	r.HandleFunc("/ui/players", playersHandler.List).Methods(http.MethodGet)
	r.Handle("/ui", http.RedirectHandler("/ui/players", http.StatusSeeOther)).Methods(http.MethodGet)
	r.Handle("/ui/", http.RedirectHandler("/ui/players", http.StatusSeeOther)).Methods(http.MethodGet)

	return r
}
