package catalog

import "context"

// ClientInterface defines the interface for catalog feed operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	FetchIndex(ctx context.Context) ([]string, error)
	FetchPack(ctx context.Context, packURL string) (*Pack, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
