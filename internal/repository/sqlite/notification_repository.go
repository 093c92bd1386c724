package sqlite

import (
	"context"

	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

type notificationRepository struct {
	db *db.DB
}

// NewNotificationRepository creates a new NotificationRepository implementation
func NewNotificationRepository(database *db.DB) repository.NotificationRepository {
	return &notificationRepository{db: database}
}

func (r *notificationRepository) Insert(ctx context.Context, n models.Notification) error {
	log := logger.FromContext(ctx).WithPrefix("notification_repo")
	log.Debug("inserting notification: id=%s, player_id=%d, kind=%s", n.ID, n.PlayerID, n.Kind)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO notifications (id, player_id, kind, actor_id, puzzle_id)
VALUES (?, ?, ?, ?, ?)
`, n.ID, n.PlayerID, n.Kind, n.ActorID, n.PuzzleID)
	if err != nil {
		log.Error("failed to insert notification: %v", err)
	}
	return err
}

// ListForPlayer returns notifications unread-first, newest-first within each
// group.
func (r *notificationRepository) ListForPlayer(ctx context.Context, playerID int64, limit, offset int) ([]models.Notification, error) {
	log := logger.FromContext(ctx).WithPrefix("notification_repo")
	log.Debug("listing notifications: player_id=%d, limit=%d, offset=%d", playerID, limit, offset)

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, player_id, kind, actor_id, puzzle_id, read_at, created_at
FROM notifications
WHERE player_id = ?
ORDER BY (read_at IS NULL) DESC, created_at DESC
LIMIT ? OFFSET ?
`, playerID, limit, offset)
	if err != nil {
		log.Error("failed to list notifications: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.PlayerID, &n.Kind, &n.ActorID, &n.PuzzleID, &n.ReadAt, &n.CreatedAt); err != nil {
			log.Error("failed to scan notification row: %v", err)
			return nil, err
		}
		notifications = append(notifications, n)
	}
	log.Debug("found %d notifications", len(notifications))
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, playerID int64, id string) error {
	log := logger.FromContext(ctx).WithPrefix("notification_repo")
	log.Debug("marking notification read: id=%s", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE notifications
SET read_at = CURRENT_TIMESTAMP
WHERE id = ? AND player_id = ? AND read_at IS NULL
`, id, playerID)
	if err != nil {
		log.Error("failed to mark notification read: %v", err)
	}
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, playerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("notification_repo")
	log.Debug("marking all notifications read: player_id=%d", playerID)

	_, err := r.db.ExecContext(ctx, `
UPDATE notifications
SET read_at = CURRENT_TIMESTAMP
WHERE player_id = ? AND read_at IS NULL
`, playerID)
	if err != nil {
		log.Error("failed to mark all read: %v", err)
	}
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, playerID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM notifications WHERE player_id = ? AND read_at IS NULL
`, playerID).Scan(&count)
	return count, err
}
