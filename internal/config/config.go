package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	CatalogURL        string
	FeedBatchSize     int
	ExplorationRatio  float64
	NotifyWorkerCount int
	NotifyQueueSize   int
	ImportWorkerCount int
	ImportQueueSize   int
	SocialCacheTTL    time.Duration
	WriteRatePerSec   float64
	WriteRateBurst    int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:puzzlefeed.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		CatalogURL:        envOr("CATALOG_URL", ""),
		FeedBatchSize:     envIntOr("FEED_BATCH_SIZE", 15),
		ExplorationRatio:  envFloatOr("EXPLORATION_RATIO", 0.33),
		NotifyWorkerCount: envIntOr("NOTIFY_WORKER_COUNT", 2),
		NotifyQueueSize:   envIntOr("NOTIFY_QUEUE_SIZE", 128),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 16),
		SocialCacheTTL:    envDurationOr("SOCIAL_CACHE_TTL", 5*time.Minute),
		WriteRatePerSec:   envFloatOr("WRITE_RATE_PER_SEC", 5),
		WriteRateBurst:    envIntOr("WRITE_RATE_BURST", 10),
	}
}

// Validate checks the configuration for values that would break the server at runtime.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.FeedBatchSize <= 0 {
		return fmt.Errorf("FEED_BATCH_SIZE must be positive, got %d", c.FeedBatchSize)
	}
	if c.ExplorationRatio < 0 || c.ExplorationRatio >= 1 {
		return fmt.Errorf("EXPLORATION_RATIO must be in [0, 1), got %v", c.ExplorationRatio)
	}
	if c.NotifyWorkerCount <= 0 || c.ImportWorkerCount <= 0 {
		return fmt.Errorf("worker counts must be positive")
	}
	if c.WriteRatePerSec <= 0 || c.WriteRateBurst <= 0 {
		return fmt.Errorf("write rate limit must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
