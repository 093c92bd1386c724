package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lcamargo/puzzlefeed/internal/cache"
	"github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/jobs"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

const maxCommentLength = 2000

// SocialService handles the follow/block graph, likes and comments
type SocialService interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	Followers(ctx context.Context, playerID int64) ([]models.Player, error)
	Following(ctx context.Context, playerID int64) ([]models.Player, error)
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) error
	BlockedIDs(ctx context.Context, playerID int64) ([]int64, error)
	Like(ctx context.Context, playerID int64, puzzleID string) error
	Unlike(ctx context.Context, playerID int64, puzzleID string) error
	Comment(ctx context.Context, playerID int64, puzzleID, body string) (*models.Comment, error)
	ListComments(ctx context.Context, puzzleID string, limit, offset int) ([]models.Comment, error)
	DeleteComment(ctx context.Context, playerID int64, commentID string) error
}

type socialService struct {
	socialRepo  repository.SocialRepository
	commentRepo repository.CommentRepository
	playerRepo  repository.PlayerRepository
	puzzleRepo  repository.PuzzleRepository
	queue       jobs.JobQueue
	blockCache  *cache.Cache[int64, []int64]
}

// NewSocialService creates a new SocialService
func NewSocialService(
	socialRepo repository.SocialRepository,
	commentRepo repository.CommentRepository,
	playerRepo repository.PlayerRepository,
	puzzleRepo repository.PuzzleRepository,
	queue jobs.JobQueue,
	cacheTTL time.Duration,
) SocialService {
	return &socialService{
		socialRepo:  socialRepo,
		commentRepo: commentRepo,
		playerRepo:  playerRepo,
		puzzleRepo:  puzzleRepo,
		queue:       queue,
		blockCache:  cache.New[int64, []int64](cacheTTL),
	}
}

func (s *socialService) requirePlayer(ctx context.Context, id int64) error {
	player, err := s.playerRepo.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if player == nil {
		return errors.NewNotFoundError("player", id)
	}
	return nil
}

func (s *socialService) Follow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx)

	if followerID == followeeID {
		return errors.NewValidationError("followee_id", "cannot follow yourself")
	}
	if err := s.requirePlayer(ctx, followeeID); err != nil {
		return err
	}

	blocked, err := s.BlockedIDs(ctx, followerID)
	if err != nil {
		return err
	}
	for _, id := range blocked {
		if id == followeeID {
			return errors.NewForbiddenError("cannot follow a blocked player")
		}
	}

	already, err := s.socialRepo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		log.Error("failed to check follow state: %v", err)
		return errors.NewInternalError(err)
	}

	if err := s.socialRepo.Follow(ctx, followerID, followeeID); err != nil {
		log.Error("failed to follow: %v", err)
		return errors.NewInternalError(err)
	}

	// Re-following must not spam the followee's inbox.
	if !already {
		if err := s.queue.EnqueueNotify(followeeID, models.NotifyFollow, followerID, ""); err != nil {
			log.Warn("failed to enqueue follow notification: %v", err)
		}
	}
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx)
	if err := s.socialRepo.Unfollow(ctx, followerID, followeeID); err != nil {
		log.Error("failed to unfollow: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *socialService) Followers(ctx context.Context, playerID int64) ([]models.Player, error) {
	players, err := s.socialRepo.Followers(ctx, playerID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return players, nil
}

func (s *socialService) Following(ctx context.Context, playerID int64) ([]models.Player, error) {
	players, err := s.socialRepo.Following(ctx, playerID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return players, nil
}

func (s *socialService) Block(ctx context.Context, blockerID, blockedID int64) error {
	log := logger.FromContext(ctx)

	if blockerID == blockedID {
		return errors.NewValidationError("blocked_id", "cannot block yourself")
	}
	if err := s.requirePlayer(ctx, blockedID); err != nil {
		return err
	}

	// The repository removes follow edges in both directions in the same tx.
	if err := s.socialRepo.Block(ctx, blockerID, blockedID); err != nil {
		log.Error("failed to block: %v", err)
		return errors.NewInternalError(err)
	}
	s.blockCache.Invalidate(blockerID)
	s.blockCache.Invalidate(blockedID)
	return nil
}

func (s *socialService) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	log := logger.FromContext(ctx)
	if err := s.socialRepo.Unblock(ctx, blockerID, blockedID); err != nil {
		log.Error("failed to unblock: %v", err)
		return errors.NewInternalError(err)
	}
	s.blockCache.Invalidate(blockerID)
	s.blockCache.Invalidate(blockedID)
	return nil
}

func (s *socialService) BlockedIDs(ctx context.Context, playerID int64) ([]int64, error) {
	ids, err := s.blockCache.GetOrFetch(ctx, playerID, func(ctx context.Context) ([]int64, error) {
		return s.socialRepo.BlockedIDs(ctx, playerID)
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return ids, nil
}

func (s *socialService) Like(ctx context.Context, playerID int64, puzzleID string) error {
	log := logger.FromContext(ctx)

	puzzle, err := s.puzzleRepo.Get(ctx, puzzleID)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return errors.NewInternalError(err)
	}
	if puzzle == nil {
		return errors.NewNotFoundError("puzzle", puzzleID)
	}

	if err := s.socialRepo.Like(ctx, playerID, puzzleID); err != nil {
		log.Error("failed to like: %v", err)
		return errors.NewInternalError(err)
	}

	if puzzle.AuthorID != 0 && puzzle.AuthorID != playerID {
		if err := s.queue.EnqueueNotify(puzzle.AuthorID, models.NotifyLike, playerID, puzzleID); err != nil {
			log.Warn("failed to enqueue like notification: %v", err)
		}
	}
	return nil
}

func (s *socialService) Unlike(ctx context.Context, playerID int64, puzzleID string) error {
	log := logger.FromContext(ctx)
	if err := s.socialRepo.Unlike(ctx, playerID, puzzleID); err != nil {
		log.Error("failed to unlike: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *socialService) Comment(ctx context.Context, playerID int64, puzzleID, body string) (*models.Comment, error) {
	log := logger.FromContext(ctx)

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.NewValidationError("body", "must not be empty")
	}
	if len(body) > maxCommentLength {
		return nil, errors.NewValidationError("body", "too long")
	}

	puzzle, err := s.puzzleRepo.Get(ctx, puzzleID)
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if puzzle == nil {
		return nil, errors.NewNotFoundError("puzzle", puzzleID)
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PuzzleID:  puzzleID,
		PlayerID:  playerID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Insert(ctx, comment); err != nil {
		log.Error("failed to insert comment: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if puzzle.AuthorID != 0 && puzzle.AuthorID != playerID {
		if err := s.queue.EnqueueNotify(puzzle.AuthorID, models.NotifyComment, playerID, puzzleID); err != nil {
			log.Warn("failed to enqueue comment notification: %v", err)
		}
	}
	return &comment, nil
}

func (s *socialService) ListComments(ctx context.Context, puzzleID string, limit, offset int) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListForPuzzle(ctx, puzzleID, limit, offset)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return comments, nil
}

func (s *socialService) DeleteComment(ctx context.Context, playerID int64, commentID string) error {
	log := logger.FromContext(ctx)

	comment, err := s.commentRepo.Get(ctx, commentID)
	if err != nil {
		log.Error("failed to get comment: %v", err)
		return errors.NewInternalError(err)
	}
	if comment == nil {
		return errors.NewNotFoundError("comment", commentID)
	}
	if comment.PlayerID != playerID {
		return errors.NewForbiddenError("only the author can delete a comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		log.Error("failed to delete comment: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
