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

func TestRecordPlay_ForwardsKind(t *testing.T) {
	puzzle := models.Puzzle{ID: "p1", Type: "math", Difficulty: models.DifficultyEasy}

	cases := []struct {
		name   string
		kind   string
		record func(PlayService) error
	}{
		{"attempt", models.PlayAttempt, func(s PlayService) error {
			return s.RecordAttempt(context.Background(), 1, "p1")
		}},
		{"complete", models.PlayComplete, func(s PlayService) error {
			return s.RecordComplete(context.Background(), 1, "p1")
		}},
		{"skip", models.PlaySkip, func(s PlayService) error {
			return s.RecordSkip(context.Background(), 1, "p1")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			puzzleRepo := &mocks.MockPuzzleRepository{}
			statsRepo := &mocks.MockStatsRepository{}
			puzzleRepo.On("Get", mock.Anything, "p1").Return(&puzzle, nil)
			statsRepo.On("RecordPlay", mock.Anything, int64(1), puzzle, tc.kind).Return(nil)

			service := NewPlayService(puzzleRepo, statsRepo)
			require.NoError(t, tc.record(service))
			statsRepo.AssertExpectations(t)
		})
	}
}

func TestRecordPlay_UnknownPuzzle(t *testing.T) {
	puzzleRepo := &mocks.MockPuzzleRepository{}
	statsRepo := &mocks.MockStatsRepository{}
	puzzleRepo.On("Get", mock.Anything, "missing").Return(nil, nil)

	service := NewPlayService(puzzleRepo, statsRepo)
	err := service.RecordAttempt(context.Background(), 1, "missing")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	statsRepo.AssertNotCalled(t, "RecordPlay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
