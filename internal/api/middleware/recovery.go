package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/playerregistry/internal/api/apierr"
	"github.com/mcoot/playerregistry/internal/middleware"
)

// Recovery answers handler panics with the INTERNAL_ERROR envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

// Logging logs API requests tagged with component=api
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}
