package api

import (
	"net/http"
)

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	size := queryInt(r, "size", 0)

	batch, err := s.FeedService.Feed(r.Context(), player.ID, size)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"puzzles": batch,
		"count":   len(batch),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
