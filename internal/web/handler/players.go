package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/playerregistry/internal/api/request"
	"github.com/mcoot/playerregistry/internal/query"
	"github.com/mcoot/playerregistry/internal/services/player"
	"github.com/mcoot/playerregistry/internal/web/templates/layout"
	"github.com/mcoot/playerregistry/internal/web/templates/pages"
)

// PlayersHandler renders the player table
type PlayersHandler struct {
	players *player.Service
	logger  *slog.Logger
}

// NewPlayersHandler creates a new PlayersHandler
func NewPlayersHandler(players *player.Service, logger *slog.Logger) *PlayersHandler {
	return &PlayersHandler{
		players: players,
		logger:  logger,
	}
}

// List renders GET /ui/players with the same filters and paging as the JSON list
func (h *PlayersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pages.PlayersData{
		PageData: layout.PageData{Title: "Players"},
		Query:    q,
		Page:     query.DefaultPage(),
	}

	status := http.StatusOK
	if err := h.load(r, &data); err != nil {
		if !errors.Is(err, query.ErrInvalidQuery) {
			h.logger.ErrorContext(r.Context(), "render players failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		status = http.StatusBadRequest
		data.Error = err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Players(data).Render(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "write players page failed", slog.String("error", err.Error()))
	}
}

func (h *PlayersHandler) load(r *http.Request, data *pages.PlayersData) error {
	criteria, err := request.ParseCriteria(data.Query)
	if err != nil {
		return err
	}
	page, err := request.ParsePage(data.Query)
	if err != nil {
		return err
	}
	data.Page = page

	if data.Players, err = h.players.List(r.Context(), criteria, page); err != nil {
		return err
	}
	data.Total, err = h.players.Count(r.Context(), criteria)
	return err
}
