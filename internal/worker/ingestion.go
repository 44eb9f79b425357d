package worker

import (
	"context"
	"encoding/json"
	"io"

	"attendance-tracker/internal/config"
	"attendance-tracker/internal/db"
	"attendance-tracker/internal/ingest"
	"attendance-tracker/internal/logger"
	"attendance-tracker/internal/model"
	"attendance-tracker/internal/queue"
	"attendance-tracker/internal/storage"
	"attendance-tracker/internal/table"

	"github.com/rs/zerolog"
)

// IngestionWorker consumes ingestion jobs, pulls the referenced sheet from
// object storage and runs it through the attendance pipeline.
type IngestionWorker struct {
	cfg        *config.Config
	repo       db.Repository
	storage    storage.Storage
	pipeline   *ingest.Pipeline
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewIngestionWorker(
	cfg *config.Config,
	repo db.Repository,
	storage storage.Storage,
	redisClient *queue.RedisClient,
) *IngestionWorker {
	return &IngestionWorker{
		cfg:        cfg,
		repo:       repo,
		storage:    storage,
		pipeline:   ingest.NewPipeline(repo),
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Ingestion.Count),
		log:        logger.Get(),
	}
}

func (w *IngestionWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting ingestion worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeIngestionQueue(ctx, w.handleMessage)
}

func (w *IngestionWorker) Stop() {
	w.log.Info().Msg("Stopping ingestion worker")
	w.workerPool.Stop()
}

func (w *IngestionWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.IngestionJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal ingestion job")
		return err
	}

	w.log.Info().Int64("file_id", job.FileID).Str("object_key", job.ObjectKey).Msg("Processing ingestion job")

	w.workerPool.Submit(func(ctx context.Context) error {
		return w.processFile(ctx, job)
	})

	return nil
}

func (w *IngestionWorker) processFile(ctx context.Context, job model.IngestionJob) error {
	log := w.log.With().Int64("file_id", job.FileID).Logger()

	reader, err := w.storage.Download(ctx, job.ObjectKey)
	if err != nil {
		log.Error().Err(err).Msg("Failed to download file")
		return w.fail(ctx, job.FileID, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read file data")
		return w.fail(ctx, job.FileID, err)
	}

	tbl, err := table.Load(job.ObjectKey, data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load file as a table")
		return w.fail(ctx, job.FileID, err)
	}

	diag, err := w.pipeline.Run(ctx, tbl)
	if err != nil {
		log.Error().Err(err).Msg("Attendance pipeline failed")
		return w.fail(ctx, job.FileID, err)
	}

	if err := w.repo.UpdateFileStatus(ctx, job.FileID, model.FileStatusIngested, nil); err != nil {
		log.Error().Err(err).Msg("Failed to update file status")
		return err
	}

	log.Info().
		Int("total_rows", diag.TotalRows).
		Int("distinct_pairs_any_time", diag.DistinctPairsAnyTime).
		Int("unparseable_time_rows", diag.UnparseableTimeRows).
		Int("processed_groups", diag.ProcessedGroups).
		Int("created", diag.Created).
		Int("updated", diag.Updated).
		Msg("File ingested")
	return nil
}

func (w *IngestionWorker) fail(ctx context.Context, fileID int64, cause error) error {
	errorMsg := cause.Error()
	if err := w.repo.UpdateFileStatus(ctx, fileID, model.FileStatusFailed, &errorMsg); err != nil {
		w.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to mark file as failed")
	}
	return cause
}
