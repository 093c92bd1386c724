package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type puzzleRepository struct {
	db *db.DB
}

// NewPuzzleRepository creates a new PuzzleRepository implementation
func NewPuzzleRepository(database *db.DB) repository.PuzzleRepository {
	return &puzzleRepository{db: database}
}

const puzzleColumns = `id, external_id, type, difficulty, title, author_id, payload, created_at`

func scanPuzzle(scan func(dest ...any) error) (models.Puzzle, error) {
	var p models.Puzzle
	var externalID sql.NullString
	err := scan(&p.ID, &externalID, &p.Type, &p.Difficulty, &p.Title, &p.AuthorID, &p.Payload, &p.CreatedAt)
	p.ExternalID = externalID.String
	return p, err
}

func (r *puzzleRepository) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("getting puzzle: id=%s", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+puzzleColumns+`
FROM puzzles
WHERE id = ?
`, id)
	p, err := scanPuzzle(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("puzzle not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get puzzle: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *puzzleRepository) Insert(ctx context.Context, puzzle models.Puzzle) error {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("inserting puzzle: id=%s, type=%s, difficulty=%d", puzzle.ID, puzzle.Type, puzzle.Difficulty)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO puzzles (id, external_id, type, difficulty, title, author_id, payload)
VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?)
`, puzzle.ID, puzzle.ExternalID, puzzle.Type, puzzle.Difficulty, puzzle.Title, puzzle.AuthorID, puzzle.Payload)
	if err != nil {
		log.Error("failed to insert puzzle: %v", err)
	}
	return err
}

// InsertBatch inserts puzzles in one transaction, skipping rows whose external ID
// already exists. Returns the number of rows actually inserted.
func (r *puzzleRepository) InsertBatch(ctx context.Context, puzzles []models.Puzzle) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("batch inserting %d puzzles", len(puzzles))

	inserted := 0
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, p := range puzzles {
			res, err := tx.ExecContext(ctx, `
INSERT INTO puzzles (id, external_id, type, difficulty, title, author_id, payload)
VALUES (?, NULLIF(?, ''), ?, ?, ?, ?, ?)
ON CONFLICT DO NOTHING
`, p.ID, p.ExternalID, p.Type, p.Difficulty, p.Title, p.AuthorID, p.Payload)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		log.Error("batch insert failed: %v", err)
		return 0, err
	}
	log.Debug("batch insert complete: %d of %d inserted", inserted, len(puzzles))
	return inserted, nil
}

func (r *puzzleRepository) filterQuery(base squirrel.SelectBuilder, filter models.PuzzleFilter) squirrel.SelectBuilder {
	if filter.Type != "" {
		base = base.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Difficulty != 0 {
		base = base.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.AuthorID != 0 {
		base = base.Where(squirrel.Eq{"author_id": filter.AuthorID})
	}
	return base
}

func (r *puzzleRepository) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("listing puzzles: type=%s, difficulty=%d, author_id=%d", filter.Type, filter.Difficulty, filter.AuthorID)

	query := r.filterQuery(sqlBuilder.Select(
		"id", "external_id", "type", "difficulty", "title", "author_id", "payload", "created_at",
	).From("puzzles"), filter)

	// Safe ORDER BY with validation
	orderBy := "created_at"
	if filter.OrderBy == "created_at" || filter.OrderBy == "difficulty" || filter.OrderBy == "type" {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list puzzles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows.Scan)
		if err != nil {
			log.Error("failed to scan puzzle row: %v", err)
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	log.Debug("found %d puzzles", len(puzzles))
	return puzzles, rows.Err()
}

func (r *puzzleRepository) Count(ctx context.Context, filter models.PuzzleFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")

	query := r.filterQuery(sqlBuilder.Select("COUNT(*)").From("puzzles"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count puzzles: %v", err)
		return 0, err
	}
	return count, nil
}

// Candidates returns the ranking pool for a player's feed: recent puzzles they
// did not author. Completed puzzles stay in the pool; the ranker penalizes them
// instead of excluding them.
func (r *puzzleRepository) Candidates(ctx context.Context, playerID int64, limit int) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")
	log.Debug("fetching feed candidates: player_id=%d, limit=%d", playerID, limit)

	if limit <= 0 {
		limit = 200
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+puzzleColumns+`
FROM puzzles
WHERE author_id != ?
ORDER BY created_at DESC
LIMIT ?
`, playerID, limit)
	if err != nil {
		log.Error("failed to fetch candidates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows.Scan)
		if err != nil {
			log.Error("failed to scan candidate row: %v", err)
			return nil, err
		}
		puzzles = append(puzzles, p)
	}
	log.Debug("found %d candidates", len(puzzles))
	return puzzles, rows.Err()
}

func (r *puzzleRepository) ExistingExternalIDs(ctx context.Context) (map[string]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT external_id
FROM puzzles
WHERE external_id IS NOT NULL AND external_id != ''
`)
	if err != nil {
		log.Error("failed to fetch external IDs: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan external ID: %v", err)
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
