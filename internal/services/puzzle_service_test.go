package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lcamargo/puzzlefeed/internal/errors"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/testutil/mocks"
)

type puzzleFixture struct {
	puzzleRepo  *mocks.MockPuzzleRepository
	socialRepo  *mocks.MockSocialRepository
	commentRepo *mocks.MockCommentRepository
	statsRepo   *mocks.MockStatsRepository
	service     PuzzleService
}

func newPuzzleFixture(t *testing.T) *puzzleFixture {
	t.Helper()
	f := &puzzleFixture{
		puzzleRepo:  &mocks.MockPuzzleRepository{},
		socialRepo:  &mocks.MockSocialRepository{},
		commentRepo: &mocks.MockCommentRepository{},
		statsRepo:   &mocks.MockStatsRepository{},
	}
	f.service = NewPuzzleService(f.puzzleRepo, f.socialRepo, f.commentRepo, f.statsRepo)
	return f
}

func TestCreatePuzzle_AssignsID(t *testing.T) {
	f := newPuzzleFixture(t)
	f.puzzleRepo.On("Insert", mock.Anything, mock.MatchedBy(func(p models.Puzzle) bool {
		return p.ID != "" && p.AuthorID == 1 && p.Type == "math"
	})).Return(nil)

	puzzle, err := f.service.Create(context.Background(), 1, "math", models.DifficultyEasy,
		"Two trains", `{"question":"when do they meet?","answer":"noon"}`)
	require.NoError(t, err)
	assert.NotEmpty(t, puzzle.ID)
	f.puzzleRepo.AssertExpectations(t)
}

func TestCreatePuzzle_RejectsUnknownType(t *testing.T) {
	f := newPuzzleFixture(t)

	_, err := f.service.Create(context.Background(), 1, "sudoku", models.DifficultyEasy,
		"Grid", `{"grid":[]}`)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCreatePuzzle_RejectsOutOfRangeDifficulty(t *testing.T) {
	f := newPuzzleFixture(t)

	_, err := f.service.Create(context.Background(), 1, "math", 4,
		"Too hard", `{"question":"?","answer":"?"}`)
	require.Error(t, err)
}

func TestCreatePuzzle_RejectsPayloadMissingRequiredField(t *testing.T) {
	f := newPuzzleFixture(t)

	_, err := f.service.Create(context.Background(), 1, "wordchain", models.DifficultyMedium,
		"Chain", `{"start":"cold"}`)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "end")
}

func TestCreatePuzzle_RejectsNonObjectPayload(t *testing.T) {
	f := newPuzzleFixture(t)

	_, err := f.service.Create(context.Background(), 1, "riddle", models.DifficultyEasy,
		"Riddle", `"just a string"`)
	require.Error(t, err)
}

func TestGetPuzzle_AggregatesCounters(t *testing.T) {
	f := newPuzzleFixture(t)
	puzzle := &models.Puzzle{ID: "p1", Type: "logic", Difficulty: models.DifficultyHard, AuthorID: 3}
	f.puzzleRepo.On("Get", mock.Anything, "p1").Return(puzzle, nil)
	f.socialRepo.On("LikeCount", mock.Anything, "p1").Return(4, nil)
	f.commentRepo.On("Count", mock.Anything, "p1").Return(2, nil)
	f.socialRepo.On("HasLiked", mock.Anything, int64(1), "p1").Return(true, nil)
	f.statsRepo.On("CompletedIDs", mock.Anything, int64(1)).Return(map[string]bool{"p1": true}, nil)

	detail, err := f.service.Get(context.Background(), 1, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, detail.LikeCount)
	assert.Equal(t, 2, detail.CommentCount)
	assert.True(t, detail.Liked)
	assert.True(t, detail.Completed)
}

func TestGetPuzzle_NotFound(t *testing.T) {
	f := newPuzzleFixture(t)
	f.puzzleRepo.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := f.service.Get(context.Background(), 1, "missing")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestListPuzzles_RejectsBadDifficultyFilter(t *testing.T) {
	f := newPuzzleFixture(t)

	_, _, err := f.service.List(context.Background(), models.PuzzleFilter{Difficulty: 9})
	require.Error(t, err)
}

func TestListPuzzles_ReturnsTotal(t *testing.T) {
	f := newPuzzleFixture(t)
	filter := models.PuzzleFilter{Type: "math", Limit: 10}
	f.puzzleRepo.On("List", mock.Anything, filter).Return([]models.Puzzle{{ID: "p1"}}, nil)
	f.puzzleRepo.On("Count", mock.Anything, filter).Return(23, nil)

	puzzles, total, err := f.service.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, puzzles, 1)
	assert.Equal(t, 23, total)
}
