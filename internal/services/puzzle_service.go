package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

// PuzzleService handles catalog business logic
type PuzzleService interface {
	Create(ctx context.Context, authorID int64, puzzleType string, difficulty int, title, payload string) (*models.Puzzle, error)
	Get(ctx context.Context, playerID int64, id string) (*models.PuzzleDetail, error)
	List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, int, error)
}

type puzzleService struct {
	puzzleRepo  repository.PuzzleRepository
	socialRepo  repository.SocialRepository
	commentRepo repository.CommentRepository
	statsRepo   repository.StatsRepository
}

// NewPuzzleService creates a new PuzzleService
func NewPuzzleService(
	puzzleRepo repository.PuzzleRepository,
	socialRepo repository.SocialRepository,
	commentRepo repository.CommentRepository,
	statsRepo repository.StatsRepository,
) PuzzleService {
	return &puzzleService{
		puzzleRepo:  puzzleRepo,
		socialRepo:  socialRepo,
		commentRepo: commentRepo,
		statsRepo:   statsRepo,
	}
}

// requiredPayloadKeys lists the payload fields each built-in puzzle type must carry.
var requiredPayloadKeys = map[string][]string{
	"futoshiki": {"grid", "constraints"},
	"hidato":    {"grid"},
	"wordchain": {"start", "end"},
	"math":      {"question", "answer"},
	"riddle":    {"question", "answer"},
	"logic":     {"question", "answer"},
}

func validatePayload(puzzleType, payload string) *errors.AppError {
	var body map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return errors.NewValidationError("payload", "must be a JSON object")
	}
	for _, key := range requiredPayloadKeys[puzzleType] {
		if _, ok := body[key]; !ok {
			return errors.NewValidationError("payload", "missing required field "+key)
		}
	}
	return nil
}

func (s *puzzleService) Create(ctx context.Context, authorID int64, puzzleType string, difficulty int, title, payload string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating puzzle: author_id=%d, type=%s, difficulty=%d", authorID, puzzleType, difficulty)

	if !models.IsKnownType(puzzleType) {
		return nil, errors.NewValidationError("type", "unknown puzzle type")
	}
	if difficulty < models.DifficultyEasy || difficulty > models.DifficultyHard {
		return nil, errors.NewValidationError("difficulty", "must be between 1 and 3")
	}
	if title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}
	if appErr := validatePayload(puzzleType, payload); appErr != nil {
		return nil, appErr
	}

	puzzle := models.Puzzle{
		ID:         uuid.NewString(),
		Type:       puzzleType,
		Difficulty: difficulty,
		Title:      title,
		AuthorID:   authorID,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.puzzleRepo.Insert(ctx, puzzle); err != nil {
		log.Error("failed to insert puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &puzzle, nil
}

func (s *puzzleService) Get(ctx context.Context, playerID int64, id string) (*models.PuzzleDetail, error) {
	log := logger.FromContext(ctx)

	puzzle, err := s.puzzleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, errors.NewNotFoundError("puzzle", id)
	}

	detail := &models.PuzzleDetail{Puzzle: *puzzle}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.LikeCount, err = s.socialRepo.LikeCount(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.CommentCount, err = s.commentRepo.Count(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Liked, err = s.socialRepo.HasLiked(gctx, playerID, id)
		return err
	})
	g.Go(func() error {
		completed, err := s.statsRepo.CompletedIDs(gctx, playerID)
		if err != nil {
			return err
		}
		detail.Completed = completed[id]
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load puzzle counters: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return detail, nil
}

func (s *puzzleService) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, int, error) {
	log := logger.FromContext(ctx)

	if filter.Type != "" && !models.IsKnownType(filter.Type) {
		// Imported packs may carry types outside the built-in set, so an unknown
		// filter value is a valid query that matches nothing local.
		log.Debug("listing puzzles with non-built-in type filter: %s", filter.Type)
	}
	if filter.Difficulty != 0 && (filter.Difficulty < models.DifficultyEasy || filter.Difficulty > models.DifficultyHard) {
		return nil, 0, errors.NewValidationError("difficulty", "must be between 1 and 3")
	}

	puzzles, err := s.puzzleRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.puzzleRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count puzzles: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return puzzles, total, nil
}
