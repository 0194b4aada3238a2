package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/playerregistry/internal/middleware"
)

// Logging logs HTML requests tagged with component=web
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "web")))
}
