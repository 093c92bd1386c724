package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/models"
)

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filter := models.PuzzleFilter{
		Type:     r.URL.Query().Get("type"),
		Limit:    limit,
		Offset:   offset,
		OrderBy:  r.URL.Query().Get("order_by"),
		OrderDir: r.URL.Query().Get("order_dir"),
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid difficulty"))
			return
		}
		filter.Difficulty = d
	}
	if raw := r.URL.Query().Get("author_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid author_id"))
			return
		}
		filter.AuthorID = id
	}

	puzzles, total, err := s.PuzzleService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"puzzles": puzzles,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	var req struct {
		Type       string          `json:"type"`
		Difficulty int             `json:"difficulty"`
		Title      string          `json:"title"`
		Payload    json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	puzzle, err := s.PuzzleService.Create(r.Context(), player.ID, req.Type, req.Difficulty, req.Title, string(req.Payload))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, puzzle)
}

func (s *Server) handlePuzzleDetail(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	detail, err := s.PuzzleService.Get(r.Context(), player.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	s.recordPlay(w, r, s.PlayService.RecordAttempt)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.recordPlay(w, r, s.PlayService.RecordComplete)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.recordPlay(w, r, s.PlayService.RecordSkip)
}

func (s *Server) recordPlay(w http.ResponseWriter, r *http.Request, record func(ctx context.Context, playerID int64, puzzleID string) error) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := record(r.Context(), player.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
