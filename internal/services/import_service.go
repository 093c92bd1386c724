package services

import (
	"context"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/jobs"
	"github.com/lcamargo/puzzlefeed/internal/logger"
)

// ImportService triggers background catalog imports
type ImportService interface {
	TriggerImport(ctx context.Context) error
	TriggerStatsRebuild(ctx context.Context, playerID int64) error
}

type importService struct {
	queue jobs.JobQueue
}

// NewImportService creates a new ImportService
func NewImportService(queue jobs.JobQueue) ImportService {
	return &importService{queue: queue}
}

func (s *importService) TriggerImport(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("enqueueing catalog import")
	if err := s.queue.EnqueueImport(); err != nil {
		log.Warn("import queue rejected job: %v", err)
		return errors.NewConflictError("an import is already queued")
	}
	return nil
}

func (s *importService) TriggerStatsRebuild(ctx context.Context, playerID int64) error {
	log := logger.FromContext(ctx)
	log.Info("enqueueing stats rebuild for player %d", playerID)
	if err := s.queue.EnqueueStatsRebuild(playerID); err != nil {
		log.Warn("rebuild queue rejected job: %v", err)
		return errors.NewConflictError("a rebuild is already queued")
	}
	return nil
}
