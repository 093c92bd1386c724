package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	limit, offset := pagination(r)

	notifications, unread, err := s.NotificationService.List(r.Context(), player.ID, limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread":        unread,
	})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if err := s.NotificationService.MarkRead(r.Context(), player.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	if err := s.NotificationService.MarkAllRead(r.Context(), player.ID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := s.ImportService.TriggerImport(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]any{"status": "import queued"})
}
