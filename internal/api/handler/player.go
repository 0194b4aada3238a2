package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/playerregistry/internal/api/request"
	"github.com/mcoot/playerregistry/internal/api/response"
	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/services/player"
)

// maxBodyBytes bounds player request bodies
const maxBodyBytes = 1 << 16

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := request.ParseCriteria(q)
	if err != nil {
		WriteError(w, err)
		return
	}
	page, err := request.ParsePage(q)
	if err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.players.List(r.Context(), criteria, page)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Count handles GET /players/count
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	criteria, err := request.ParseCriteria(r.URL.Query())
	if err != nil {
		WriteError(w, err)
		return
	}

	n, err := h.players.Count(r.Context(), criteria)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, n)
}

// Create handles POST /players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.players.Create(r.Context(), body.ToPatch())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Get handles GET /players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePlayerID(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Update handles POST /players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePlayerID(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	p, err := h.players.Update(r.Context(), id, body.ToPatch())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePlayerID(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.Empty(w, http.StatusOK)
}

func decodeBody(w http.ResponseWriter, r *http.Request) (request.PlayerBody, bool) {
	var body request.PlayerBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		WriteError(w, bodyError(err))
		return request.PlayerBody{}, false
	}
	return body, true
}
