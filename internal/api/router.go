package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/playerregistry/internal/api/handler"
	"github.com/mcoot/playerregistry/internal/api/middleware"
	"github.com/mcoot/playerregistry/internal/api/response"
	shared "github.com/mcoot/playerregistry/internal/middleware"
	"github.com/mcoot/playerregistry/internal/services/player"
)

// BasePaths lists the prefixes the player routes are mounted under.
// "/rest" keeps clients of the older base path working.
var BasePaths = []string{"", "/rest"}

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	PlayerService *player.Service
	// AdminTokenHash is a bcrypt hash; when set, mutating routes require
	// the matching bearer token
	AdminTokenHash string
	// RateLimiter is optional; nil disables rate limiting
	RateLimiter *middleware.IPRateLimiter
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)

	// Create middleware
	adminMiddleware := middleware.AdminToken(cfg.AdminTokenHash, cfg.Logger)

	r.Use(shared.RequestID())
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(shared.Metrics())

	// Operational endpoints are not rate limited
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	for _, base := range BasePaths {
		players := r.PathPrefix(base + "/players").Subrouter()
		players.Use(middleware.RateLimit(cfg.RateLimiter))

		// Read routes
		players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
		players.HandleFunc("/count", playerHandler.Count).Methods(http.MethodGet)
		players.HandleFunc("/{id}", playerHandler.Get).Methods(http.MethodGet)

		// Mutating routes
		mutating := players.NewRoute().Subrouter()
		mutating.Use(adminMiddleware)
		mutating.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)
		mutating.HandleFunc("/{id}", playerHandler.Update).Methods(http.MethodPost)
		mutating.HandleFunc("/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
