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

type playerRepository struct {
	db *db.DB
}

// NewPlayerRepository creates a new PlayerRepository implementation
func NewPlayerRepository(database *db.DB) repository.PlayerRepository {
	return &playerRepository{db: database}
}

func (r *playerRepository) Get(ctx context.Context, id int64) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("getting player: id=%d", id)

	var p models.Player
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, created_at, last_played_at
FROM players
WHERE id = ?
`, id).Scan(&p.ID, &p.Username, &p.CreatedAt, &p.LastPlayedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("player not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get player: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) Upsert(ctx context.Context, username string) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("upserting player: username=%s", username)

	var p models.Player
	err := r.db.QueryRowContext(ctx, `
INSERT INTO players (username)
VALUES (?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING id, username, created_at, last_played_at
`, username).Scan(&p.ID, &p.Username, &p.CreatedAt, &p.LastPlayedAt)
	if err != nil {
		log.Error("failed to upsert player: %v", err)
		return nil, err
	}
	log.Debug("player upserted: id=%d", p.ID)
	return &p, nil
}

func (r *playerRepository) List(ctx context.Context) ([]models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("listing players")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, created_at, last_played_at
FROM players
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list players: %v", err)
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

	log.Debug("found %d players", len(players))
	return players, rows.Err()
}

func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("player_repo")
	log.Debug("deleting player and related data: id=%d", id)

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		// The player's own puzzles go first so FK cascades on likes/comments fire,
		// then the player row takes the rest down with it.
		if _, err := tx.ExecContext(ctx, `DELETE FROM puzzles WHERE author_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id); err != nil {
			return err
		}
		return nil
	})
}
