package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/players", s.handlePlayers)
	r.Post("/players", s.handleCreatePlayer)
	r.Post("/players/{id}/select", s.handleSelectPlayer)

	// Everything below needs an identified player.
	r.Group(func(r chi.Router) {
		r.Use(s.playerMiddleware)
		r.Use(s.writeRateLimitMiddleware)

		r.Get("/feed", s.handleFeed)

		r.Get("/puzzles", s.handleListPuzzles)
		r.Post("/puzzles", s.handleCreatePuzzle)
		r.Get("/puzzles/{id}", s.handlePuzzleDetail)
		r.Post("/puzzles/{id}/attempt", s.handleAttempt)
		r.Post("/puzzles/{id}/complete", s.handleComplete)
		r.Post("/puzzles/{id}/skip", s.handleSkip)
		r.Post("/puzzles/{id}/like", s.handleLike)
		r.Delete("/puzzles/{id}/like", s.handleUnlike)
		r.Get("/puzzles/{id}/comments", s.handleListComments)
		r.Post("/puzzles/{id}/comments", s.handleCreateComment)
		r.Delete("/comments/{id}", s.handleDeleteComment)

		r.Post("/social/follow/{id}", s.handleFollow)
		r.Delete("/social/follow/{id}", s.handleUnfollow)
		r.Post("/social/block/{id}", s.handleBlock)
		r.Delete("/social/block/{id}", s.handleUnblock)
		r.Get("/social/followers", s.handleFollowers)
		r.Get("/social/following", s.handleFollowing)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/read", s.handleMarkAllRead)
		r.Post("/notifications/{id}/read", s.handleMarkRead)

		r.Delete("/players/{id}", s.handleDeletePlayer)

		r.Post("/import", s.handleImport)
		r.Post("/stats/rebuild", s.handleStatsRebuild)
	})

	return r
}
