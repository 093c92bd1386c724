package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueNotify(playerID int64, kind string, actorID int64, puzzleID string) error {
	args := m.Called(playerID, kind, actorID, puzzleID)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueImport() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueStatsRebuild(playerID int64) error {
	args := m.Called(playerID)
	return args.Error(0)
}
