package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

type statsRepository struct {
	db *db.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(database *db.DB) repository.StatsRepository {
	return &statsRepository{db: database}
}

// Profile assembles the ranking read model: per-category counters bucketed by
// difficulty plus the player's last-played timestamp. Missing players yield an
// empty profile, which the ranker treats as a new user.
func (r *statsRepository) Profile(ctx context.Context, playerID int64) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("assembling profile: player_id=%d", playerID)

	profile := &models.UserProfile{StatsByCategory: make(map[string]models.CategoryStats)}

	var lastPlayed sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT last_played_at FROM players WHERE id = ?
`, playerID).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		log.Error("failed to read last_played_at: %v", err)
		return nil, err
	}
	if lastPlayed.Valid {
		t := lastPlayed.Time
		profile.LastPlayedAt = &t
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT category, difficulty, attempted, completed, skipped
FROM category_stats
WHERE player_id = ?
`, playerID)
	if err != nil {
		log.Error("failed to query category stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var difficulty int
		var d models.DifficultyStats
		if err := rows.Scan(&category, &difficulty, &d.Attempted, &d.Completed, &d.Skipped); err != nil {
			log.Error("failed to scan category stats row: %v", err)
			return nil, err
		}

		stats := profile.StatsByCategory[category]
		stats.Attempted += d.Attempted
		stats.Skipped += d.Skipped
		switch difficulty {
		case models.DifficultyEasy:
			stats.Easy = d
		case models.DifficultyMedium:
			stats.Medium = d
		case models.DifficultyHard:
			stats.Hard = d
		}
		profile.StatsByCategory[category] = stats
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("profile assembled: %d categories", len(profile.StatsByCategory))
	return profile, nil
}

func (r *statsRepository) CompletedIDs(ctx context.Context, playerID int64) (map[string]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching completed IDs: player_id=%d", playerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT puzzle_id FROM completions WHERE player_id = ?
`, playerID)
	if err != nil {
		log.Error("failed to query completions: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan completion row: %v", err)
			return nil, err
		}
		ids[id] = true
	}
	log.Debug("found %d completions", len(ids))
	return ids, rows.Err()
}

// RecordPlay applies one gameplay event atomically: append the event, bump the
// denormalized counters, record the completion, and touch last_played_at.
func (r *statsRepository) RecordPlay(ctx context.Context, playerID int64, puzzle models.Puzzle, kind string) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("recording play: player_id=%d, puzzle_id=%s, kind=%s", playerID, puzzle.ID, kind)

	var dAttempted, dCompleted, dSkipped int
	switch kind {
	case models.PlayAttempt:
		dAttempted = 1
	case models.PlayComplete:
		dCompleted = 1
	case models.PlaySkip:
		dSkipped = 1
	default:
		return fmt.Errorf("unknown play kind %q", kind)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO play_events (player_id, puzzle_id, kind)
VALUES (?, ?, ?)
`, playerID, puzzle.ID, kind); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO category_stats (player_id, category, difficulty, attempted, completed, skipped)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(player_id, category, difficulty) DO UPDATE SET
	attempted = attempted + excluded.attempted,
	completed = completed + excluded.completed,
	skipped = skipped + excluded.skipped
`, playerID, puzzle.Type, puzzle.Difficulty, dAttempted, dCompleted, dSkipped); err != nil {
			return err
		}

		if kind == models.PlayComplete {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO completions (player_id, puzzle_id)
VALUES (?, ?)
ON CONFLICT DO NOTHING
`, playerID, puzzle.ID); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx, `
UPDATE players SET last_played_at = CURRENT_TIMESTAMP WHERE id = ?
`, playerID)
		return err
	})
}

// Rebuild recomputes the denormalized counters for a player from the raw event
// log. Used by the background repair job when counters drift.
func (r *statsRepository) Rebuild(ctx context.Context, playerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Info("rebuilding category stats: player_id=%d", playerID)

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM category_stats WHERE player_id = ?
`, playerID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
INSERT INTO category_stats (player_id, category, difficulty, attempted, completed, skipped)
SELECT e.player_id, p.type, p.difficulty,
       SUM(CASE WHEN e.kind = 'attempt' THEN 1 ELSE 0 END),
       SUM(CASE WHEN e.kind = 'complete' THEN 1 ELSE 0 END),
       SUM(CASE WHEN e.kind = 'skip' THEN 1 ELSE 0 END)
FROM play_events e
JOIN puzzles p ON p.id = e.puzzle_id
WHERE e.player_id = ?
GROUP BY p.type, p.difficulty
`, playerID)
		return err
	})
}
