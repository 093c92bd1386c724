package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

type commentRepository struct {
	db *db.DB
}

// NewCommentRepository creates a new CommentRepository implementation
func NewCommentRepository(database *db.DB) repository.CommentRepository {
	return &commentRepository{db: database}
}

func (r *commentRepository) Insert(ctx context.Context, comment models.Comment) error {
	log := logger.FromContext(ctx).WithPrefix("comment_repo")
	log.Debug("inserting comment: id=%s, puzzle_id=%s", comment.ID, comment.PuzzleID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO comments (id, puzzle_id, player_id, body)
VALUES (?, ?, ?, ?)
`, comment.ID, comment.PuzzleID, comment.PlayerID, comment.Body)
	if err != nil {
		log.Error("failed to insert comment: %v", err)
	}
	return err
}

func (r *commentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	log := logger.FromContext(ctx).WithPrefix("comment_repo")

	var c models.Comment
	err := r.db.QueryRowContext(ctx, `
SELECT id, puzzle_id, player_id, body, created_at
FROM comments
WHERE id = ?
`, id).Scan(&c.ID, &c.PuzzleID, &c.PlayerID, &c.Body, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("comment not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get comment: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListForPuzzle(ctx context.Context, puzzleID string, limit, offset int) ([]models.Comment, error) {
	log := logger.FromContext(ctx).WithPrefix("comment_repo")
	log.Debug("listing comments: puzzle_id=%s, limit=%d, offset=%d", puzzleID, limit, offset)

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, puzzle_id, player_id, body, created_at
FROM comments
WHERE puzzle_id = ?
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`, puzzleID, limit, offset)
	if err != nil {
		log.Error("failed to list comments: %v", err)
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PuzzleID, &c.PlayerID, &c.Body, &c.CreatedAt); err != nil {
			log.Error("failed to scan comment row: %v", err)
			return nil, err
		}
		comments = append(comments, c)
	}
	log.Debug("found %d comments", len(comments))
	return comments, rows.Err()
}

func (r *commentRepository) Count(ctx context.Context, puzzleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM comments WHERE puzzle_id = ?
`, puzzleID).Scan(&count)
	return count, err
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("comment_repo")
	log.Debug("deleting comment: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete comment: %v", err)
	}
	return err
}
