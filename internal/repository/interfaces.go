package repository

import (
	"context"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// Get methods return (nil, nil) when the row does not exist; callers translate
// that into a not-found error at the service boundary.

// PlayerRepository handles player account data access
type PlayerRepository interface {
	Get(ctx context.Context, id int64) (*models.Player, error)
	Upsert(ctx context.Context, username string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Delete(ctx context.Context, id int64) error
}

// PuzzleRepository handles catalog data access
type PuzzleRepository interface {
	Get(ctx context.Context, id string) (*models.Puzzle, error)
	Insert(ctx context.Context, puzzle models.Puzzle) error
	InsertBatch(ctx context.Context, puzzles []models.Puzzle) (int, error)
	List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error)
	Count(ctx context.Context, filter models.PuzzleFilter) (int, error)
	Candidates(ctx context.Context, playerID int64, limit int) ([]models.Puzzle, error)
	ExistingExternalIDs(ctx context.Context) (map[string]bool, error)
}

// StatsRepository handles gameplay counters and the ranking read model
type StatsRepository interface {
	Profile(ctx context.Context, playerID int64) (*models.UserProfile, error)
	CompletedIDs(ctx context.Context, playerID int64) (map[string]bool, error)
	RecordPlay(ctx context.Context, playerID int64, puzzle models.Puzzle, kind string) error
	Rebuild(ctx context.Context, playerID int64) error
}

// SocialRepository handles the follow/block/like graph
type SocialRepository interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, playerID int64) ([]models.Player, error)
	Following(ctx context.Context, playerID int64) ([]models.Player, error)
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) error
	BlockedIDs(ctx context.Context, playerID int64) ([]int64, error)
	Like(ctx context.Context, playerID int64, puzzleID string) error
	Unlike(ctx context.Context, playerID int64, puzzleID string) error
	HasLiked(ctx context.Context, playerID int64, puzzleID string) (bool, error)
	LikeCount(ctx context.Context, puzzleID string) (int, error)
}

// CommentRepository handles puzzle comments
type CommentRepository interface {
	Insert(ctx context.Context, comment models.Comment) error
	Get(ctx context.Context, id string) (*models.Comment, error)
	ListForPuzzle(ctx context.Context, puzzleID string, limit, offset int) ([]models.Comment, error)
	Count(ctx context.Context, puzzleID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// NotificationRepository handles notification inbox rows
type NotificationRepository interface {
	Insert(ctx context.Context, notification models.Notification) error
	ListForPlayer(ctx context.Context, playerID int64, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, playerID int64, id string) error
	MarkAllRead(ctx context.Context, playerID int64) error
	CountUnread(ctx context.Context, playerID int64) (int, error)
}
