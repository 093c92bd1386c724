package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueNotify(playerID int64, kind string, actorID int64, puzzleID string) error
	EnqueueImport() error
	EnqueueStatsRebuild(playerID int64) error
}
