package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lcamargo/puzzlefeed/internal/catalog"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/models"
	"github.com/lcamargo/puzzlefeed/internal/repository"
)

// NotifyJob writes a notification row for a single recipient.
type NotifyJob struct {
	Notifications repository.NotificationRepository
	PlayerID      int64
	Kind          string
	ActorID       int64
	PuzzleID      string
}

func (j *NotifyJob) Name() string {
	return fmt.Sprintf("notify-%s-player-%d", j.Kind, j.PlayerID)
}

func (j *NotifyJob) Run(ctx context.Context) error {
	return j.Notifications.Insert(ctx, models.Notification{
		ID:        uuid.NewString(),
		PlayerID:  j.PlayerID,
		Kind:      j.Kind,
		ActorID:   j.ActorID,
		PuzzleID:  j.PuzzleID,
		CreatedAt: time.Now().UTC(),
	})
}

// ImportPacksJob pulls the remote catalog index, fetches each pack and inserts
// the puzzles that are not already present.
type ImportPacksJob struct {
	Catalog catalog.ClientInterface
	Puzzles repository.PuzzleRepository
}

func (j *ImportPacksJob) Name() string {
	return "import-packs"
}

func (j *ImportPacksJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	packURLs, err := j.Catalog.FetchIndex(ctx)
	if err != nil {
		return fmt.Errorf("fetching pack index: %w", err)
	}
	log.Info("pack index fetched, %d packs listed", len(packURLs))

	existing, err := j.Puzzles.ExistingExternalIDs(ctx)
	if err != nil {
		return fmt.Errorf("loading known external ids: %w", err)
	}

	totalInserted := 0
	for _, packURL := range packURLs {
		pack, err := j.Catalog.FetchPack(ctx, packURL)
		if err != nil {
			log.Warn("skipping pack %s: %v", packURL, err)
			continue
		}

		batch := make([]models.Puzzle, 0, len(pack.Puzzles))
		for _, p := range pack.Puzzles {
			if p.ID == "" || existing[p.ID] {
				continue
			}
			if p.Type == "" {
				log.Warn("pack %s: puzzle %s has no type, skipping", pack.ID, p.ID)
				continue
			}
			if p.Difficulty < models.DifficultyEasy || p.Difficulty > models.DifficultyHard {
				log.Warn("pack %s: puzzle %s has out-of-range difficulty %d, skipping", pack.ID, p.ID, p.Difficulty)
				continue
			}
			existing[p.ID] = true
			batch = append(batch, models.Puzzle{
				ID:         uuid.NewString(),
				ExternalID: p.ID,
				Type:       p.Type,
				Difficulty: p.Difficulty,
				Title:      p.Title,
				Payload:    p.Payload,
				CreatedAt:  time.Now().UTC(),
			})
		}
		if len(batch) == 0 {
			continue
		}

		inserted, err := j.Puzzles.InsertBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("inserting pack %s: %w", pack.ID, err)
		}
		totalInserted += inserted
		log.Info("pack %s imported, %d new puzzles", pack.ID, inserted)
	}

	log.Info("import finished, %d puzzles added across %d packs", totalInserted, len(packURLs))
	return nil
}

// StatsRebuildJob recomputes a player's category counters from the play event
// history.
type StatsRebuildJob struct {
	Stats    repository.StatsRepository
	PlayerID int64
}

func (j *StatsRebuildJob) Name() string {
	return fmt.Sprintf("stats-rebuild-player-%d", j.PlayerID)
}

func (j *StatsRebuildJob) Run(ctx context.Context) error {
	return j.Stats.Rebuild(ctx, j.PlayerID)
}
