package api

import (
	"github.com/lcamargo/puzzlefeed/internal/services"
)

type Server struct {
	PlayerService       services.PlayerService
	FeedService         services.FeedService
	PuzzleService       services.PuzzleService
	PlayService         services.PlayService
	SocialService       services.SocialService
	NotificationService services.NotificationService
	ImportService       services.ImportService

	WriteRatePerSec float64
	WriteRateBurst  int
}
