package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// MockSocialRepository is a mock implementation of repository.SocialRepository
type MockSocialRepository struct {
	mock.Mock
}

func (m *MockSocialRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockSocialRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockSocialRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) Followers(ctx context.Context, playerID int64) ([]models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockSocialRepository) Following(ctx context.Context, playerID int64) ([]models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockSocialRepository) Block(ctx context.Context, blockerID, blockedID int64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *MockSocialRepository) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *MockSocialRepository) BlockedIDs(ctx context.Context, playerID int64) ([]int64, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSocialRepository) Like(ctx context.Context, playerID int64, puzzleID string) error {
	args := m.Called(ctx, playerID, puzzleID)
	return args.Error(0)
}

func (m *MockSocialRepository) Unlike(ctx context.Context, playerID int64, puzzleID string) error {
	args := m.Called(ctx, playerID, puzzleID)
	return args.Error(0)
}

func (m *MockSocialRepository) HasLiked(ctx context.Context, playerID int64, puzzleID string) (bool, error) {
	args := m.Called(ctx, playerID, puzzleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) LikeCount(ctx context.Context, puzzleID string) (int, error) {
	args := m.Called(ctx, puzzleID)
	return args.Int(0), args.Error(1)
}
