package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// MockNotificationRepository is a mock implementation of repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, notification models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForPlayer(ctx context.Context, playerID int64, limit, offset int) ([]models.Notification, error) {
	args := m.Called(ctx, playerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, playerID int64, id string) error {
	args := m.Called(ctx, playerID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, playerID int64) error {
	args := m.Called(ctx, playerID)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, playerID int64) (int, error) {
	args := m.Called(ctx, playerID)
	return args.Int(0), args.Error(1)
}
