package recommend

import (
	"math"
	"time"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// Scoring weights. Category engagement dominates the base score; the diversity and
// exploration bonuses only nudge.
const (
	categoryWeight    = 0.5
	difficultyWeight  = 0.3
	diversityWeight   = 0.1
	explorationWeight = 0.1

	completionPenalty = 0.3

	newUserEasyScore  = 0.6
	newUserOtherScore = 0.4

	decayGraceDays = 7.0
	decayFloor     = 0.2
)

// CategoryEngagement derives a [0,1] engagement score from a category's counters.
// A category with no recorded interactions scores 0.
func CategoryEngagement(stats models.CategoryStats) float64 {
	if stats.Attempted+stats.Skipped == 0 {
		return 0
	}

	totalCompleted := stats.TotalCompleted()

	completionRate := 0.0
	if stats.Attempted > 0 {
		completionRate = float64(totalCompleted) / float64(stats.Attempted)
	}

	skipRate := float64(stats.Skipped) / float64(stats.Attempted+stats.Skipped)

	engagement := 0.6*completionRate + 0.4*(1-skipRate)

	// Reward volume a little so a 1/1 category does not outrank a 9/10 one forever.
	volumeBonus := math.Min(float64(totalCompleted)/10, 0.2)

	return math.Min(1.0, engagement+volumeBonus)
}

// DifficultyPreference scores how well a difficulty level fits the player's record
// in a category. No data at all yields the neutral prior 0.5; data for the category
// but none at this difficulty yields the mildly negative prior 0.3.
func DifficultyPreference(stats models.CategoryStats, difficulty int) float64 {
	if stats == (models.CategoryStats{}) {
		return 0.5
	}

	d := stats.ForDifficulty(difficulty)
	if d.Attempted == 0 {
		return 0.3
	}

	completionRate := float64(d.Completed) / float64(d.Attempted)

	skipRate := 0.0
	if d.Attempted+d.Skipped > 0 {
		skipRate = float64(d.Skipped) / float64(d.Attempted+d.Skipped)
	}

	return 0.7*completionRate + 0.3*(1-skipRate)
}

// TimeDecay computes the decay multiplier for a category, in [decayFloor, 1.0].
// Nothing decays inside the seven-day grace window or when the player has never
// played. Heavily engaged categories decay faster once neglected; there is more
// to lose.
func TimeDecay(lastPlayedAt *time.Time, engagement float64, now time.Time) float64 {
	if lastPlayedAt == nil {
		return 1.0
	}
	days := now.Sub(*lastPlayedAt).Hours() / 24
	return TimeDecayDays(days, engagement)
}

// TimeDecayDays is TimeDecay with the day count already computed.
func TimeDecayDays(daysSince float64, engagement float64) float64 {
	if daysSince < decayGraceDays {
		return 1.0
	}

	daysOverThreshold := daysSince - decayGraceDays
	baseDecayRate := math.Min(0.8, daysOverThreshold/100)

	engagementMultiplier := clamp(0.3+engagement*0.9, 0.3, 1.2)

	totalDecay := baseDecayRate * engagementMultiplier
	return math.Max(decayFloor, 1.0-totalDecay)
}

// ScorePuzzle scores a single candidate for a player. Scores are only meaningful
// relative to each other within one ranking pass. A nil or empty profile gets the
// flat new-user prior favoring easy puzzles.
func ScorePuzzle(puzzle models.Puzzle, profile *models.UserProfile, completed map[string]bool, now time.Time) float64 {
	if profile == nil || len(profile.StatsByCategory) == 0 {
		if puzzle.Difficulty == models.DifficultyEasy {
			return newUserEasyScore
		}
		return newUserOtherScore
	}

	stats := profile.StatsByCategory[puzzle.Type]

	categoryScore := CategoryEngagement(stats)
	difficultyScore := DifficultyPreference(stats, puzzle.Difficulty)
	timeDecay := TimeDecay(profile.LastPlayedAt, categoryScore, now)

	penalty := 1.0
	if completed[puzzle.ID] {
		penalty = completionPenalty
	}

	// Never-attempted categories get the full diversity bonus; it decays to zero
	// by ten plays.
	diversityBonus := 0.2
	if stats.Attempted > 0 {
		diversityBonus = math.Max(0, 0.2-float64(stats.Attempted)/50)
	}

	// A narrow window nudging toward categories the player tried and abandoned a
	// little, but not ones abandoned heavily.
	explorationBonus := 0.0
	if stats.Skipped > 0 && stats.Skipped < 5 {
		explorationBonus = 0.1
	}

	baseScore := categoryWeight*categoryScore +
		difficultyWeight*difficultyScore +
		diversityWeight*diversityBonus +
		explorationWeight*explorationBonus

	return baseScore * timeDecay * penalty
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
