package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lcamargo/puzzlefeed/internal/api"
	"github.com/lcamargo/puzzlefeed/internal/catalog"
	"github.com/lcamargo/puzzlefeed/internal/config"
	"github.com/lcamargo/puzzlefeed/internal/db"
	"github.com/lcamargo/puzzlefeed/internal/jobs"
	"github.com/lcamargo/puzzlefeed/internal/logger"
	"github.com/lcamargo/puzzlefeed/internal/repository/sqlite"
	"github.com/lcamargo/puzzlefeed/internal/services"
	"github.com/lcamargo/puzzlefeed/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Puzzlefeed Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("catalog_url=%s", cfg.CatalogURL)
	log.Debug("feed_batch_size=%d", cfg.FeedBatchSize)
	log.Debug("exploration_ratio=%v", cfg.ExplorationRatio)
	log.Debug("notify_worker_count=%d", cfg.NotifyWorkerCount)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("social_cache_ttl=%v", cfg.SocialCacheTTL)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	playerRepo := sqlite.NewPlayerRepository(database)
	puzzleRepo := sqlite.NewPuzzleRepository(database)
	statsRepo := sqlite.NewStatsRepository(database)
	socialRepo := sqlite.NewSocialRepository(database)
	commentRepo := sqlite.NewCommentRepository(database)
	notifyRepo := sqlite.NewNotificationRepository(database)

	// Worker pools and job queue
	notifyPool := worker.NewPool(cfg.NotifyWorkerCount, cfg.NotifyQueueSize)
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	catalogClient := catalog.New(cfg.CatalogURL)
	queue := jobs.NewWorkerQueue(notifyPool, importPool, catalogClient, puzzleRepo, statsRepo, notifyRepo)

	// Services
	playerService := services.NewPlayerService(playerRepo)
	socialService := services.NewSocialService(socialRepo, commentRepo, playerRepo, puzzleRepo, queue, cfg.SocialCacheTTL)
	feedService := services.NewFeedService(puzzleRepo, statsRepo, socialService, cfg.FeedBatchSize, cfg.ExplorationRatio)
	puzzleService := services.NewPuzzleService(puzzleRepo, socialRepo, commentRepo, statsRepo)
	playService := services.NewPlayService(puzzleRepo, statsRepo)
	notificationService := services.NewNotificationService(notifyRepo)
	importService := services.NewImportService(queue)

	srv := &api.Server{
		PlayerService:       playerService,
		FeedService:         feedService,
		PuzzleService:       puzzleService,
		PlayService:         playService,
		SocialService:       socialService,
		NotificationService: notificationService,
		ImportService:       importService,
		WriteRatePerSec:     cfg.WriteRatePerSec,
		WriteRateBurst:      cfg.WriteRateBurst,
	}

	ctx, cancel := context.WithCancel(context.Background())
	notifyPool.Start(ctx)
	importPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pools")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping notify pool")
	notifyPool.Stop()
	log.Debug("stopping import pool")
	importPool.Stop()

	log.Info("===========================================")
	log.Info("Puzzlefeed Server Stopped")
	log.Info("===========================================")
}
