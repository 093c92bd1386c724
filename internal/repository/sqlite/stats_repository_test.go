package sqlite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
	"github.com/lcamargo/puzzlefeed/internal/repository/sqlite"
	"github.com/lcamargo/puzzlefeed/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db      *db.DB
	repo    repository.StatsRepository
	puzzles repository.PuzzleRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
	s.puzzles = sqlite.NewPuzzleRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) createPlayer(username string) int64 {
	var id int64
	err := s.db.QueryRowContext(context.Background(), `
INSERT INTO players (username) VALUES (?) RETURNING id
`, username).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *StatsRepositorySuite) createPuzzle(category string, difficulty int) models.Puzzle {
	p := models.Puzzle{
		ID:         uuid.NewString(),
		Type:       category,
		Difficulty: difficulty,
		Title:      "t",
	}
	s.Require().NoError(s.puzzles.Insert(context.Background(), p))
	return p
}

func (s *StatsRepositorySuite) TestProfileEmptyForNewPlayer() {
	playerID := s.createPlayer("eva")

	profile, err := s.repo.Profile(context.Background(), playerID)
	s.Require().NoError(err)
	s.Require().NotNil(profile)
	s.Empty(profile.StatsByCategory)
	s.Nil(profile.LastPlayedAt)
}

func (s *StatsRepositorySuite) TestRecordPlayBumpsCounters() {
	ctx := context.Background()
	playerID := s.createPlayer("fabio")
	easyMath := s.createPuzzle("math", models.DifficultyEasy)
	hardMath := s.createPuzzle("math", models.DifficultyHard)

	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, easyMath, models.PlayAttempt))
	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, easyMath, models.PlayComplete))
	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, hardMath, models.PlayAttempt))
	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, hardMath, models.PlaySkip))

	profile, err := s.repo.Profile(ctx, playerID)
	s.Require().NoError(err)

	math, ok := profile.StatsByCategory["math"]
	s.Require().True(ok)
	s.Equal(2, math.Attempted)
	s.Equal(1, math.Skipped)
	s.Equal(models.DifficultyStats{Attempted: 1, Completed: 1, Skipped: 0}, math.Easy)
	s.Equal(models.DifficultyStats{Attempted: 1, Completed: 0, Skipped: 1}, math.Hard)
	s.Require().NotNil(profile.LastPlayedAt)
}

func (s *StatsRepositorySuite) TestRecordPlayRejectsUnknownKind() {
	ctx := context.Background()
	playerID := s.createPlayer("gus")
	p := s.createPuzzle("riddle", models.DifficultyEasy)

	s.Error(s.repo.RecordPlay(ctx, playerID, p, "pondered"))
}

func (s *StatsRepositorySuite) TestCompletedIDs() {
	ctx := context.Background()
	playerID := s.createPlayer("hana")
	done := s.createPuzzle("logic", models.DifficultyMedium)
	skipped := s.createPuzzle("logic", models.DifficultyMedium)

	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, done, models.PlayComplete))
	// Completing twice must not break the primary key.
	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, done, models.PlayComplete))
	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, skipped, models.PlaySkip))

	ids, err := s.repo.CompletedIDs(ctx, playerID)
	s.Require().NoError(err)
	s.True(ids[done.ID])
	s.False(ids[skipped.ID])
	s.Len(ids, 1)
}

func (s *StatsRepositorySuite) TestRebuildRepairsDriftedCounters() {
	ctx := context.Background()
	playerID := s.createPlayer("iris")
	p := s.createPuzzle("wordchain", models.DifficultyEasy)

	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, p, models.PlayAttempt))
	s.Require().NoError(s.repo.RecordPlay(ctx, playerID, p, models.PlayComplete))

	// Corrupt the denormalized counters behind the repository's back.
	_, err := s.db.ExecContext(ctx, `
UPDATE category_stats SET attempted = 99 WHERE player_id = ?
`, playerID)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Rebuild(ctx, playerID))

	profile, err := s.repo.Profile(ctx, playerID)
	s.Require().NoError(err)
	wc := profile.StatsByCategory["wordchain"]
	s.Equal(1, wc.Attempted)
	s.Equal(models.DifficultyStats{Attempted: 1, Completed: 1, Skipped: 0}, wc.Easy)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
