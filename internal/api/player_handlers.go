package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/logger"
)

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.PlayerService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	player, err := s.PlayerService.Upsert(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("player created: id=%d, username=%s", player.ID, player.Username)
	setPlayerCookie(w, player.ID)
	respondJSON(w, http.StatusCreated, player)
}

func (s *Server) handleSelectPlayer(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid player id"))
		return
	}

	player, err := s.PlayerService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setPlayerCookie(w, player.ID)
	respondJSON(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid player id"))
		return
	}

	if err := s.PlayerService.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if current := playerFromContext(r.Context()); current != nil && current.ID == id {
		clearPlayerCookie(w)
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleStatsRebuild(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	if err := s.ImportService.TriggerStatsRebuild(r.Context(), player.ID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]any{"status": "rebuild queued"})
}
