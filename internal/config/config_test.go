package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcamargo/puzzlefeed/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		FeedBatchSize:     15,
		ExplorationRatio:  0.33,
		NotifyWorkerCount: 2,
		NotifyQueueSize:   128,
		ImportWorkerCount: 1,
		ImportQueueSize:   16,
		SocialCacheTTL:    5 * time.Minute,
		WriteRatePerSec:   5,
		WriteRateBurst:    10,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_BadExplorationRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{name: "negative", ratio: -0.1},
		{name: "one", ratio: 1.0},
		{name: "above one", ratio: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ExplorationRatio = tt.ratio
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_BadFeedBatchSize(t *testing.T) {
	cfg := validConfig()
	cfg.FeedBatchSize = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "FEED_BATCH_SIZE", "EXPLORATION_RATIO", "SOCIAL_CACHE_TTL"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15, cfg.FeedBatchSize)
	assert.InDelta(t, 0.33, cfg.ExplorationRatio, 1e-9)
	assert.Equal(t, 5*time.Minute, cfg.SocialCacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FEED_BATCH_SIZE", "30")
	t.Setenv("EXPLORATION_RATIO", "0.25")
	t.Setenv("SOCIAL_CACHE_TTL", "30s")

	cfg := config.Load()
	assert.Equal(t, 30, cfg.FeedBatchSize)
	assert.InDelta(t, 0.25, cfg.ExplorationRatio, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.SocialCacheTTL)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("FEED_BATCH_SIZE", "lots")
	t.Setenv("EXPLORATION_RATIO", "a third")

	cfg := config.Load()
	assert.Equal(t, 15, cfg.FeedBatchSize)
	assert.InDelta(t, 0.33, cfg.ExplorationRatio, 1e-9)
}
