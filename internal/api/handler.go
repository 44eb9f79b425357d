package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"attendance-tracker/internal/config"
	"attendance-tracker/internal/db"
	"attendance-tracker/internal/logger"
	"attendance-tracker/internal/model"
	"attendance-tracker/internal/queue"
	"attendance-tracker/internal/report"
	apperrors "attendance-tracker/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	repo     db.Repository
	producer *queue.Producer
	reports  *report.Service
	cfg      *config.Config
	log      zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	producer *queue.Producer,
	cfg *config.Config,
) *Handler {
	return &Handler{
		repo:     repo,
		producer: producer,
		reports:  report.NewService(repo, cfg.Attendance.ThresholdDays),
		cfg:      cfg,
		log:      logger.Get(),
	}
}

// TriggerIngest enqueues the pipeline run for an uploaded file. Re-triggering
// a failed or already ingested file is allowed; the upsert is idempotent.
func (h *Handler) TriggerIngest(c *gin.Context) {
	var req model.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	file, err := h.repo.GetFile(c.Request.Context(), req.FileID)
	if errors.Is(err, apperrors.ErrFileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("file_id", req.FileID).Msg("Failed to load file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	job := model.IngestionJob{
		FileID:    file.ID,
		ObjectKey: file.ObjectKey,
	}

	if err := h.producer.EnqueueIngestionJob(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue ingestion job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue ingestion job"})
		return
	}

	h.log.Info().
		Int64("file_id", file.ID).
		Str("object_key", file.ObjectKey).
		Msg("Ingestion job enqueued")

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Ingestion job queued successfully",
		"job":     job,
	})
}

func (h *Handler) GetFileStatus(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Param("file_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	file, err := h.repo.GetFile(c.Request.Context(), fileID)
	if errors.Is(err, apperrors.ErrFileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to load file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, file)
}

func (h *Handler) GetDefaulters(c *gin.Context) {
	year, month := h.yearMonth(c)

	var thresholdOverride *int
	if raw := c.Query("threshold"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			thresholdOverride = &v
		}
		// bad input keeps the configured value, matching the lenient
		// filter handling elsewhere
	}

	defaulters, err := h.reports.Defaulters(c.Request.Context(), year, month, c.Query("email"), thresholdOverride)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build defaulter report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":       year,
		"month":      int(month),
		"defaulters": defaulters,
	})
}

func (h *Handler) GetMonthlySummary(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	year, month := h.yearMonth(c)

	summary, err := h.reports.Summary(c.Request.Context(), email, year, month)
	if err != nil {
		h.log.Error().Err(err).Str("email", email).Msg("Failed to build monthly summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ClearAttendance(c *gin.Context) {
	count, err := h.repo.ClearAttendance(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to clear attendance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.log.Info().Int64("deleted", count).Msg("Attendance records cleared")
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

func (h *Handler) yearMonth(c *gin.Context) (int, time.Month) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if v, err := strconv.Atoi(c.Query("year")); err == nil {
		year = v
	}
	if v, err := strconv.Atoi(c.Query("month")); err == nil && v >= 1 && v <= 12 {
		month = time.Month(v)
	}
	return year, month
}
