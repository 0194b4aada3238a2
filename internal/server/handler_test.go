package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/playerregistry/internal/factory"
	"github.com/mcoot/playerregistry/internal/server"
	"github.com/mcoot/playerregistry/internal/testutil"
)

func TestNewHandlerRoutes(t *testing.T) {
	app := factory.NewTestApp()
	h := server.NewHandler(server.Config{
		Logger:        testutil.NopLogger(),
		PlayerService: app.PlayerService,
	})

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/health", http.StatusOK, "application/json"},
		{"/players", http.StatusOK, "application/json"},
		{"/rest/players/count", http.StatusOK, "application/json"},
		{"/ui/players", http.StatusOK, "text/html"},
		{"/ui", http.StatusSeeOther, ""},
		{"/ui/", http.StatusSeeOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rr.Code)
			if tt.contentType != "" {
				assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), tt.contentType), rr.Header().Get("Content-Type"))
			}
		})
	}
}
