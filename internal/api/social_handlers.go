package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcamargo/puzzlefeed/internal/errors"
)

func targetPlayerID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid player id")
	}
	return id, nil
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	target, err := targetPlayerID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.SocialService.Follow(r.Context(), player.ID, target); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	target, err := targetPlayerID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.SocialService.Unfollow(r.Context(), player.ID, target); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	target, err := targetPlayerID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.SocialService.Block(r.Context(), player.ID, target); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnblock(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	target, err := targetPlayerID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.SocialService.Unblock(r.Context(), player.ID, target); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	players, err := s.SocialService.Followers(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	players, err := s.SocialService.Following(r.Context(), player.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if err := s.SocialService.Like(r.Context(), player.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if err := s.SocialService.Unlike(r.Context(), player.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit, offset := pagination(r)

	comments, err := s.SocialService.ListComments(r.Context(), id, limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	comment, err := s.SocialService.Comment(r.Context(), player.ID, id, req.Body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if err := s.SocialService.DeleteComment(r.Context(), player.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
