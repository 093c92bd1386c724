package recommend

import (
	"math/rand/v2"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// Ranker orders puzzle candidates for a player's feed. It holds no state besides
// its random source, so a single Ranker can be shared across requests. The zero
// value uses the process-wide generator and is safe for concurrent use; NewSeeded
// builds a deterministic Ranker for tests, which is not.
type Ranker struct {
	rng *rand.Rand
}

// NewSeeded returns a Ranker with a deterministic random source.
func NewSeeded(seed uint64) *Ranker {
	return &Ranker{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (r *Ranker) intN(n int) int {
	if r != nil && r.rng != nil {
		return r.rng.IntN(n)
	}
	return rand.IntN(n)
}

// shuffle performs an in-place Fisher-Yates shuffle.
func (r *Ranker) shuffle(puzzles []models.Puzzle) {
	for i := len(puzzles) - 1; i > 0; i-- {
		j := r.intN(i + 1)
		puzzles[i], puzzles[j] = puzzles[j], puzzles[i]
	}
}

var defaultRanker = &Ranker{}

// Recommendations is the default entry point: a hybrid batch with a third of the
// slots reserved for exploration.
func Recommendations(candidates []models.Puzzle, profile *models.UserProfile, completed map[string]bool, n int) []models.Puzzle {
	return defaultRanker.Recommendations(candidates, profile, completed, n)
}

// ScoredBatch ranks candidates with the process-wide random source.
func ScoredBatch(candidates []models.Puzzle, profile *models.UserProfile, completed map[string]bool, n int) []models.Puzzle {
	return defaultRanker.ScoredBatch(candidates, profile, completed, n)
}

// InterleaveByType reorders a batch with the process-wide random source's Ranker.
func InterleaveByType(puzzles []models.Puzzle) []models.Puzzle {
	return defaultRanker.InterleaveByType(puzzles)
}
