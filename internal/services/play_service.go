package services

import (
	"context"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

// PlayService records gameplay events and keeps the ranking read model current
type PlayService interface {
	RecordAttempt(ctx context.Context, playerID int64, puzzleID string) error
	RecordComplete(ctx context.Context, playerID int64, puzzleID string) error
	RecordSkip(ctx context.Context, playerID int64, puzzleID string) error
}

type playService struct {
	puzzleRepo repository.PuzzleRepository
	statsRepo  repository.StatsRepository
}

// NewPlayService creates a new PlayService
func NewPlayService(puzzleRepo repository.PuzzleRepository, statsRepo repository.StatsRepository) PlayService {
	return &playService{puzzleRepo: puzzleRepo, statsRepo: statsRepo}
}

func (s *playService) RecordAttempt(ctx context.Context, playerID int64, puzzleID string) error {
	return s.record(ctx, playerID, puzzleID, models.PlayAttempt)
}

func (s *playService) RecordComplete(ctx context.Context, playerID int64, puzzleID string) error {
	return s.record(ctx, playerID, puzzleID, models.PlayComplete)
}

func (s *playService) RecordSkip(ctx context.Context, playerID int64, puzzleID string) error {
	return s.record(ctx, playerID, puzzleID, models.PlaySkip)
}

func (s *playService) record(ctx context.Context, playerID int64, puzzleID, kind string) error {
	log := logger.FromContext(ctx)
	log.Debug("recording play: player_id=%d, puzzle_id=%s, kind=%s", playerID, puzzleID, kind)

	puzzle, err := s.puzzleRepo.Get(ctx, puzzleID)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return errors.NewInternalError(err)
	}
	if puzzle == nil {
		return errors.NewNotFoundError("puzzle", puzzleID)
	}

	if err := s.statsRepo.RecordPlay(ctx, playerID, *puzzle, kind); err != nil {
		log.Error("failed to record play: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
