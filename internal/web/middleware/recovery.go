package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/playerregistry/internal/middleware"
	"github.com/mcoot/playerregistry/internal/web/templates/layout"
)

// Recovery renders an HTML error page, inside the normal layout, when a
// view panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "web")), webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	page := layout.Base(layout.PageData{Title: "Error"}, errorBody(middleware.GetRequestID(r.Context())))
	_ = page.Render(r.Context(), w)
}

func errorBody(requestID string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Internal Server Error</h1>`+
			`<p class="error">Something went wrong while rendering this page.</p>`+
			`<p>Request ID: <code id="request-id">`+templ.EscapeString(requestID)+`</code></p>`+
			`<p><a href="/ui/players">Back to players</a></p>`)
		return err
	})
}
