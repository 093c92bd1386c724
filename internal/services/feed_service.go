package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/recommend"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

const (
	maxFeedSize       = 50
	candidatePoolSize = 200
)

// FeedService assembles the ranked puzzle feed for a player
type FeedService interface {
	Feed(ctx context.Context, playerID int64, size int) ([]models.Puzzle, error)
}

type feedService struct {
	puzzleRepo       repository.PuzzleRepository
	statsRepo        repository.StatsRepository
	social           SocialService
	ranker           *recommend.Ranker
	defaultSize      int
	explorationRatio float64
}

// NewFeedService creates a new FeedService
func NewFeedService(
	puzzleRepo repository.PuzzleRepository,
	statsRepo repository.StatsRepository,
	social SocialService,
	defaultSize int,
	explorationRatio float64,
) FeedService {
	if defaultSize <= 0 {
		defaultSize = 15
	}
	return &feedService{
		puzzleRepo:       puzzleRepo,
		statsRepo:        statsRepo,
		social:           social,
		ranker:           &recommend.Ranker{},
		defaultSize:      defaultSize,
		explorationRatio: explorationRatio,
	}
}

func (s *feedService) Feed(ctx context.Context, playerID int64, size int) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx)

	if size <= 0 {
		size = s.defaultSize
	}
	if size > maxFeedSize {
		size = maxFeedSize
	}

	var (
		candidates []models.Puzzle
		profile    *models.UserProfile
		completed  map[string]bool
		blocked    []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.puzzleRepo.Candidates(gctx, playerID, candidatePoolSize)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.statsRepo.Profile(gctx, playerID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.statsRepo.CompletedIDs(gctx, playerID)
		return err
	})
	g.Go(func() error {
		var err error
		blocked, err = s.social.BlockedIDs(gctx, playerID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load feed inputs: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if len(blocked) > 0 {
		blockedSet := make(map[int64]bool, len(blocked))
		for _, id := range blocked {
			blockedSet[id] = true
		}
		kept := candidates[:0]
		for _, p := range candidates {
			if !blockedSet[p.AuthorID] {
				kept = append(kept, p)
			}
		}
		candidates = kept
	}

	batch := s.ranker.HybridBatch(candidates, profile, completed, size, s.explorationRatio)
	batch = s.ranker.InterleaveByType(batch)

	log.Debug("feed built: player_id=%d, candidates=%d, batch=%d", playerID, len(candidates), len(batch))
	return batch, nil
}
