package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"attendance-tracker/internal/config"
	"attendance-tracker/internal/db"
	"attendance-tracker/internal/logger"
	"attendance-tracker/internal/queue"
	"attendance-tracker/internal/storage"
	"attendance-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting ingestion worker")

	database, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	repo := db.NewRepository(database)

	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	s3Storage, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}

	ingestionWorker := worker.NewIngestionWorker(cfg, repo, s3Storage, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ingestionWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Ingestion worker failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down ingestion worker...")

	cancel()
	ingestionWorker.Stop()

	log.Info().Msg("Ingestion worker exited")
}
