package models

import "time"

// Puzzle difficulty levels.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Known puzzle types. The catalog accepts any non-empty type tag; these are the
// ones the bundled creation screens produce.
var KnownTypes = []string{"futoshiki", "hidato", "wordchain", "math", "riddle", "logic"}

func IsKnownType(t string) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Puzzle struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id,omitempty"`
	Type       string    `json:"type"`
	Difficulty int       `json:"difficulty"`
	Title      string    `json:"title"`
	AuthorID   int64     `json:"author_id"`
	Payload    string    `json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
}

// PuzzleDetail is a Puzzle enriched with social counters for the detail screen.
type PuzzleDetail struct {
	Puzzle
	LikeCount    int  `json:"like_count"`
	CommentCount int  `json:"comment_count"`
	Liked        bool `json:"liked"`
	Completed    bool `json:"completed"`
}

// PuzzleFilter drives dynamic catalog listing.
type PuzzleFilter struct {
	Type       string
	Difficulty int
	AuthorID   int64
	Limit      int
	Offset     int
	OrderBy    string
	OrderDir   string
}
