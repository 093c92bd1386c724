package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Insert(ctx context.Context, comment models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListForPuzzle(ctx context.Context, puzzleID string, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, puzzleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Count(ctx context.Context, puzzleID string) (int, error) {
	args := m.Called(ctx, puzzleID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
