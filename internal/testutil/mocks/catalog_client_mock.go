package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcamargo/puzzlefeed/internal/catalog"
)

// MockCatalogClient is a mock implementation of catalog.ClientInterface
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) FetchIndex(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogClient) FetchPack(ctx context.Context, packURL string) (*catalog.Pack, error) {
	args := m.Called(ctx, packURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Pack), args.Error(1)
}
