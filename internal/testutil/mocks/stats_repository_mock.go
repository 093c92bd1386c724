package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Profile(ctx context.Context, playerID int64) (*models.UserProfile, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockStatsRepository) CompletedIDs(ctx context.Context, playerID int64) (map[string]bool, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockStatsRepository) RecordPlay(ctx context.Context, playerID int64, puzzle models.Puzzle, kind string) error {
	args := m.Called(ctx, playerID, puzzle, kind)
	return args.Error(0)
}

func (m *MockStatsRepository) Rebuild(ctx context.Context, playerID int64) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}
