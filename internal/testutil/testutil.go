package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcamargo/puzzlefeed/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// db.Open pins the pool to a single connection, so the in-memory database stays
// alive for the whole test.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("file::memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
