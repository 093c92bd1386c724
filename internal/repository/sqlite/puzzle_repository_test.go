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

type PuzzleRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.PuzzleRepository
}

func (s *PuzzleRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewPuzzleRepository(s.db)
}

func (s *PuzzleRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *PuzzleRepositorySuite) createPlayer(username string) int64 {
	var id int64
	err := s.db.QueryRowContext(context.Background(), `
INSERT INTO players (username) VALUES (?) RETURNING id
`, username).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *PuzzleRepositorySuite) newPuzzle(category string, difficulty int, authorID int64) models.Puzzle {
	return models.Puzzle{
		ID:         uuid.NewString(),
		Type:       category,
		Difficulty: difficulty,
		Title:      "test puzzle",
		AuthorID:   authorID,
		Payload:    `{"grid":[]}`,
	}
}

func (s *PuzzleRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	author := s.createPlayer("ana")
	p := s.newPuzzle("futoshiki", models.DifficultyMedium, author)

	s.Require().NoError(s.repo.Insert(ctx, p))

	got, err := s.repo.Get(ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(p.ID, got.ID)
	s.Equal("futoshiki", got.Type)
	s.Equal(models.DifficultyMedium, got.Difficulty)
	s.Equal(author, got.AuthorID)
	s.False(got.CreatedAt.IsZero())
}

func (s *PuzzleRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), uuid.NewString())
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *PuzzleRepositorySuite) TestListFilters() {
	ctx := context.Background()
	author := s.createPlayer("bruno")

	s.Require().NoError(s.repo.Insert(ctx, s.newPuzzle("math", models.DifficultyEasy, author)))
	s.Require().NoError(s.repo.Insert(ctx, s.newPuzzle("math", models.DifficultyHard, author)))
	s.Require().NoError(s.repo.Insert(ctx, s.newPuzzle("riddle", models.DifficultyEasy, author)))

	mathOnly, err := s.repo.List(ctx, models.PuzzleFilter{Type: "math"})
	s.Require().NoError(err)
	s.Len(mathOnly, 2)
	for _, p := range mathOnly {
		s.Equal("math", p.Type)
	}

	easyMath, err := s.repo.List(ctx, models.PuzzleFilter{Type: "math", Difficulty: models.DifficultyEasy})
	s.Require().NoError(err)
	s.Len(easyMath, 1)

	count, err := s.repo.Count(ctx, models.PuzzleFilter{Type: "math"})
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *PuzzleRepositorySuite) TestInsertBatchSkipsKnownExternalIDs() {
	ctx := context.Background()

	first := s.newPuzzle("hidato", models.DifficultyEasy, 0)
	first.ExternalID = "pack-1/puzzle-1"
	second := s.newPuzzle("hidato", models.DifficultyMedium, 0)
	second.ExternalID = "pack-1/puzzle-2"

	inserted, err := s.repo.InsertBatch(ctx, []models.Puzzle{first, second})
	s.Require().NoError(err)
	s.Equal(2, inserted)

	// Re-importing the same pack under fresh UUIDs inserts nothing.
	dupe := s.newPuzzle("hidato", models.DifficultyEasy, 0)
	dupe.ExternalID = "pack-1/puzzle-1"
	inserted, err = s.repo.InsertBatch(ctx, []models.Puzzle{dupe})
	s.Require().NoError(err)
	s.Equal(0, inserted)

	ids, err := s.repo.ExistingExternalIDs(ctx)
	s.Require().NoError(err)
	s.Len(ids, 2)
	s.True(ids["pack-1/puzzle-1"])
}

func (s *PuzzleRepositorySuite) TestCandidatesExcludeOwnPuzzles() {
	ctx := context.Background()
	me := s.createPlayer("carla")
	other := s.createPlayer("dani")

	mine := s.newPuzzle("wordchain", models.DifficultyEasy, me)
	theirs := s.newPuzzle("wordchain", models.DifficultyEasy, other)
	s.Require().NoError(s.repo.Insert(ctx, mine))
	s.Require().NoError(s.repo.Insert(ctx, theirs))

	candidates, err := s.repo.Candidates(ctx, me, 50)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal(theirs.ID, candidates[0].ID)
}

func TestPuzzleRepositorySuite(t *testing.T) {
	suite.Run(t, new(PuzzleRepositorySuite))
}
