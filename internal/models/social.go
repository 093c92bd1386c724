package models

import "time"

type Follow struct {
	FollowerID int64     `json:"follower_id"`
	FolloweeID int64     `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Block struct {
	BlockerID int64     `json:"blocker_id"`
	BlockedID int64     `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Like struct {
	PlayerID  int64     `json:"player_id"`
	PuzzleID  string    `json:"puzzle_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PuzzleID  string    `json:"puzzle_id"`
	PlayerID  int64     `json:"player_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification kinds.
const (
	NotifyFollow  = "follow"
	NotifyLike    = "like"
	NotifyComment = "comment"
)

type Notification struct {
	ID        string     `json:"id"`
	PlayerID  int64      `json:"player_id"`
	Kind      string     `json:"kind"`
	ActorID   int64      `json:"actor_id"`
	PuzzleID  string     `json:"puzzle_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
