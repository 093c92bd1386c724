package recommend

import (
	"sort"
	"time"

	"github.com/lcamargo/puzzlefeed/internal/models"
)

// bandWidth is the maximum score gap between a candidate and its immediate
// predecessor for the two to share a shuffle band. Bands are formed by one
// left-to-right scan over the sorted prefix: each candidate compares only to its
// predecessor, never to a band anchor, so a long run of sub-bandWidth steps can
// merge into one wide band. Kept for compatibility with the original scoring.
const bandWidth = 0.1

// DefaultExplorationRatio is the share of hybrid batch slots reserved for
// exploration picks in the public Recommendations entry point.
const DefaultExplorationRatio = 0.33

type scoredPuzzle struct {
	puzzle models.Puzzle
	score  float64
}

// ScoredBatch returns an ordered batch of at most n puzzles: deterministic scoring
// and ranking with randomized tie-breaking inside score bands, so identical inputs
// do not produce the same first puzzle on every refresh.
func (r *Ranker) ScoredBatch(candidates []models.Puzzle, profile *models.UserProfile, completed map[string]bool, n int) []models.Puzzle {
	if n <= 0 || len(candidates) == 0 {
		return []models.Puzzle{}
	}

	// Small pools skip ranking entirely; everything is returned in random order.
	if len(candidates) <= n {
		out := make([]models.Puzzle, len(candidates))
		copy(out, candidates)
		r.shuffle(out)
		return out
	}

	now := time.Now()
	scored := make([]scoredPuzzle, len(candidates))
	for i, p := range candidates {
		scored[i] = scoredPuzzle{puzzle: p, score: ScorePuzzle(p, profile, completed, now)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	top := 2 * n
	if top > len(scored) {
		top = len(scored)
	}
	scored = scored[:top]

	bands := bandByScore(scored)
	for _, band := range bands {
		r.shuffleScored(band)
	}

	// Round-robin across bands by position index to flatten banding while keeping
	// coarse rank order.
	out := make([]models.Puzzle, 0, n)
	for i := 0; len(out) < n; i++ {
		emitted := false
		for _, band := range bands {
			if i < len(band) {
				out = append(out, band[i].puzzle)
				emitted = true
				if len(out) == n {
					break
				}
			}
		}
		if !emitted {
			break
		}
	}
	return out
}

// bandByScore partitions a descending-sorted slice into contiguous runs where each
// element sits within bandWidth of its immediate predecessor.
func bandByScore(scored []scoredPuzzle) [][]scoredPuzzle {
	var bands [][]scoredPuzzle
	start := 0
	for i := 1; i <= len(scored); i++ {
		if i == len(scored) || scored[i-1].score-scored[i].score >= bandWidth {
			bands = append(bands, scored[start:i])
			start = i
		}
	}
	return bands
}

func (r *Ranker) shuffleScored(band []scoredPuzzle) {
	for i := len(band) - 1; i > 0; i-- {
		j := r.intN(i + 1)
		band[i], band[j] = band[j], band[i]
	}
}

// HybridBatch mixes personalized picks with exploration picks: puzzles the player
// has not completed, drawn preferentially from the categories with the fewest
// recorded attempts. The two groups are concatenated and shuffled together.
func (r *Ranker) HybridBatch(candidates []models.Puzzle, profile *models.UserProfile, completed map[string]bool, n int, explorationRatio float64) []models.Puzzle {
	if n <= 0 || len(candidates) == 0 {
		return []models.Puzzle{}
	}
	if explorationRatio < 0 {
		explorationRatio = 0
	}
	if explorationRatio >= 1 {
		explorationRatio = DefaultExplorationRatio
	}

	personalSlots := int(float64(n) * (1 - explorationRatio))
	personal := r.ScoredBatch(candidates, profile, completed, personalSlots)

	chosen := make(map[string]bool, len(personal))
	for _, p := range personal {
		chosen[p.ID] = true
	}

	need := n - len(personal)
	exploration := r.explorationPicks(candidates, profile, completed, chosen, need)

	out := append(personal, exploration...)
	r.shuffle(out)
	return out
}

// Recommendations is HybridBatch with the default exploration ratio.
func (r *Ranker) Recommendations(candidates []models.Puzzle, profile *models.UserProfile, completed map[string]bool, n int) []models.Puzzle {
	return r.HybridBatch(candidates, profile, completed, n, DefaultExplorationRatio)
}

// explorationPicks selects up to need puzzles the player has not completed,
// least-attempted categories first.
func (r *Ranker) explorationPicks(candidates []models.Puzzle, profile *models.UserProfile, completed, chosen map[string]bool, need int) []models.Puzzle {
	if need <= 0 {
		return nil
	}

	pool := make([]models.Puzzle, 0, len(candidates))
	for _, p := range candidates {
		if completed[p.ID] || chosen[p.ID] {
			continue
		}
		pool = append(pool, p)
	}
	r.shuffle(pool)

	playCount := func(p models.Puzzle) int {
		if profile == nil {
			return 0
		}
		return profile.StatsByCategory[p.Type].Attempted
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return playCount(pool[i]) < playCount(pool[j])
	})

	if need > len(pool) {
		need = len(pool)
	}
	return pool[:need]
}

// InterleaveByType reorders an already-selected batch round-robin by category so
// consecutive puzzles rarely share a type. Membership never changes; each
// category's internal order is preserved.
func (r *Ranker) InterleaveByType(puzzles []models.Puzzle) []models.Puzzle {
	if len(puzzles) <= 1 {
		return puzzles
	}

	buckets := make(map[string][]models.Puzzle)
	var order []string
	for _, p := range puzzles {
		if _, ok := buckets[p.Type]; !ok {
			order = append(order, p.Type)
		}
		buckets[p.Type] = append(buckets[p.Type], p)
	}
	sort.Strings(order)

	maxLen := 0
	for _, b := range buckets {
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}

	out := make([]models.Puzzle, 0, len(puzzles))
	for i := 0; i < maxLen; i++ {
		for _, t := range order {
			if i < len(buckets[t]) {
				out = append(out, buckets[t][i])
			}
		}
	}
	return out
}
