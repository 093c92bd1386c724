package jobs

import (
	"github.com/lcamargo/puzzlefeed/internal/catalog"
	"github.com/lcamargo/puzzlefeed/internal/repository"
	"github.com/lcamargo/puzzlefeed/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	notifyPool    *worker.Pool
	importPool    *worker.Pool
	catalogClient catalog.ClientInterface
	puzzleRepo    repository.PuzzleRepository
	statsRepo     repository.StatsRepository
	notifyRepo    repository.NotificationRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	notifyPool *worker.Pool,
	importPool *worker.Pool,
	catalogClient catalog.ClientInterface,
	puzzleRepo repository.PuzzleRepository,
	statsRepo repository.StatsRepository,
	notifyRepo repository.NotificationRepository,
) JobQueue {
	return &WorkerQueue{
		notifyPool:    notifyPool,
		importPool:    importPool,
		catalogClient: catalogClient,
		puzzleRepo:    puzzleRepo,
		statsRepo:     statsRepo,
		notifyRepo:    notifyRepo,
	}
}

func (q *WorkerQueue) EnqueueNotify(playerID int64, kind string, actorID int64, puzzleID string) error {
	return q.notifyPool.Submit(&worker.NotifyJob{
		Notifications: q.notifyRepo,
		PlayerID:      playerID,
		Kind:          kind,
		ActorID:       actorID,
		PuzzleID:      puzzleID,
	})
}

func (q *WorkerQueue) EnqueueImport() error {
	return q.importPool.Submit(&worker.ImportPacksJob{
		Catalog: q.catalogClient,
		Puzzles: q.puzzleRepo,
	})
}

func (q *WorkerQueue) EnqueueStatsRebuild(playerID int64) error {
	return q.importPool.Submit(&worker.StatsRebuildJob{
		Stats:    q.statsRepo,
		PlayerID: playerID,
	})
}
