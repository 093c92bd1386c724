package sqlite

import (
	"context"
	"database/sql"

	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

type socialRepository struct {
	db *db.DB
}

// NewSocialRepository creates a new SocialRepository implementation
func NewSocialRepository(database *db.DB) repository.SocialRepository {
	return &socialRepository{db: database}
}

func (r *socialRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx).WithPrefix("social_repo")
	log.Debug("follow: follower=%d, followee=%d", followerID, followeeID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO follows (follower_id, followee_id)
VALUES (?, ?)
ON CONFLICT DO NOTHING
`, followerID, followeeID)
	if err != nil {
		log.Error("failed to insert follow: %v", err)
	}
	return err
}

func (r *socialRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	log := logger.FromContext(ctx).WithPrefix("social_repo")
	log.Debug("unfollow: follower=%d, followee=%d", followerID, followeeID)

	_, err := r.db.ExecContext(ctx, `
DELETE FROM follows WHERE follower_id = ? AND followee_id = ?
`, followerID, followeeID)
	if err != nil {
		log.Error("failed to delete follow: %v", err)
	}
	return err
}

func (r *socialRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?
`, followerID, followeeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *socialRepository) Followers(ctx context.Context, playerID int64) ([]models.Player, error) {
	return r.playerEdgeList(ctx, `
SELECT p.id, p.username, p.created_at, p.last_played_at
FROM follows f
JOIN players p ON p.id = f.follower_id
WHERE f.followee_id = ?
ORDER BY f.created_at DESC
`, playerID)
}

func (r *socialRepository) Following(ctx context.Context, playerID int64) ([]models.Player, error) {
	return r.playerEdgeList(ctx, `
SELECT p.id, p.username, p.created_at, p.last_played_at
FROM follows f
JOIN players p ON p.id = f.followee_id
WHERE f.follower_id = ?
ORDER BY f.created_at DESC
`, playerID)
}

func (r *socialRepository) playerEdgeList(ctx context.Context, query string, playerID int64) ([]models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("social_repo")

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		log.Error("failed to query follow edges: %v", err)
		return nil, err
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Username, &p.CreatedAt, &p.LastPlayedAt); err != nil {
			log.Error("failed to scan player row: %v", err)
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Block inserts the block edge and severs any follow relationship in both
// directions, all in one transaction.
func (r *socialRepository) Block(ctx context.Context, blockerID, blockedID int64) error {
	log := logger.FromContext(ctx).WithPrefix("social_repo")
	log.Debug("block: blocker=%d, blocked=%d", blockerID, blockedID)

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO blocks (blocker_id, blocked_id)
VALUES (?, ?)
ON CONFLICT DO NOTHING
`, blockerID, blockedID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
DELETE FROM follows
WHERE (follower_id = ? AND followee_id = ?)
   OR (follower_id = ? AND followee_id = ?)
`, blockerID, blockedID, blockedID, blockerID)
		return err
	})
}

func (r *socialRepository) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	log := logger.FromContext(ctx).WithPrefix("social_repo")
	log.Debug("unblock: blocker=%d, blocked=%d", blockerID, blockedID)

	_, err := r.db.ExecContext(ctx, `
DELETE FROM blocks WHERE blocker_id = ? AND blocked_id = ?
`, blockerID, blockedID)
	if err != nil {
		log.Error("failed to delete block: %v", err)
	}
	return err
}

// BlockedIDs returns players blocked by playerID plus players who blocked them;
// both directions hide content.
func (r *socialRepository) BlockedIDs(ctx context.Context, playerID int64) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("social_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT blocked_id FROM blocks WHERE blocker_id = ?
UNION
SELECT blocker_id FROM blocks WHERE blocked_id = ?
`, playerID, playerID)
	if err != nil {
		log.Error("failed to query blocks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan block row: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *socialRepository) Like(ctx context.Context, playerID int64, puzzleID string) error {
	log := logger.FromContext(ctx).WithPrefix("social_repo")
	log.Debug("like: player=%d, puzzle=%s", playerID, puzzleID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO likes (player_id, puzzle_id)
VALUES (?, ?)
ON CONFLICT DO NOTHING
`, playerID, puzzleID)
	if err != nil {
		log.Error("failed to insert like: %v", err)
	}
	return err
}

func (r *socialRepository) Unlike(ctx context.Context, playerID int64, puzzleID string) error {
	log := logger.FromContext(ctx).WithPrefix("social_repo")
	log.Debug("unlike: player=%d, puzzle=%s", playerID, puzzleID)

	_, err := r.db.ExecContext(ctx, `
DELETE FROM likes WHERE player_id = ? AND puzzle_id = ?
`, playerID, puzzleID)
	if err != nil {
		log.Error("failed to delete like: %v", err)
	}
	return err
}

func (r *socialRepository) HasLiked(ctx context.Context, playerID int64, puzzleID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM likes WHERE player_id = ? AND puzzle_id = ?
`, playerID, puzzleID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *socialRepository) LikeCount(ctx context.Context, puzzleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM likes WHERE puzzle_id = ?
`, puzzleID).Scan(&count)
	return count, err
}
