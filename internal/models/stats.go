package models

import "time"

// DifficultyStats holds per-category-per-difficulty play counters. All counters
// are monotonically non-decreasing; they are bumped by play events and never reset.
type DifficultyStats struct {
	Attempted int `json:"attempted"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
}

// CategoryStats aggregates a player's interactions with one puzzle category.
type CategoryStats struct {
	Attempted int             `json:"attempted"`
	Skipped   int             `json:"skipped"`
	Easy      DifficultyStats `json:"easy"`
	Medium    DifficultyStats `json:"medium"`
	Hard      DifficultyStats `json:"hard"`
}

// ForDifficulty returns the stats bucket for an ordinal difficulty (1..3).
// Unknown difficulties map to the hard bucket.
func (c CategoryStats) ForDifficulty(difficulty int) DifficultyStats {
	switch difficulty {
	case DifficultyEasy:
		return c.Easy
	case DifficultyMedium:
		return c.Medium
	default:
		return c.Hard
	}
}

// TotalCompleted sums completions across the three difficulty buckets.
func (c CategoryStats) TotalCompleted() int {
	return c.Easy.Completed + c.Medium.Completed + c.Hard.Completed
}

// UserProfile is the read model the recommendation engine consumes. A nil
// profile, or one with an empty StatsByCategory map, means a brand-new player.
type UserProfile struct {
	StatsByCategory map[string]CategoryStats `json:"stats_by_category"`
	LastPlayedAt    *time.Time               `json:"last_played_at,omitempty"`
}

// Play event kinds recorded against a puzzle.
const (
	PlayAttempt  = "attempt"
	PlayComplete = "complete"
	PlaySkip     = "skip"
)

type PlayEvent struct {
	ID        int64     `json:"id"`
	PlayerID  int64     `json:"player_id"`
	PuzzleID  string    `json:"puzzle_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
