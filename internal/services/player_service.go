package services

import (
	"context"
	"strings"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

// PlayerService handles player accounts
type PlayerService interface {
	Upsert(ctx context.Context, username string) (*models.Player, error)
	Get(ctx context.Context, id int64) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Delete(ctx context.Context, id int64) error
}

type playerService struct {
	playerRepo repository.PlayerRepository
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(playerRepo repository.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) Upsert(ctx context.Context, username string) (*models.Player, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}
	if len(username) > 64 {
		return nil, errors.NewValidationError("username", "too long")
	}

	player, err := s.playerRepo.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to upsert player: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return player, nil
}

func (s *playerService) Get(ctx context.Context, id int64) (*models.Player, error) {
	player, err := s.playerRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if player == nil {
		return nil, errors.NewNotFoundError("player", id)
	}
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	player, err := s.playerRepo.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if player == nil {
		return errors.NewNotFoundError("player", id)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete player: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("player deleted: id=%d, username=%s", id, player.Username)
	return nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return players, nil
}
