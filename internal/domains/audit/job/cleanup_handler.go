package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/audit"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/logger"
)

// CleanupAuditEntriesHandler trims the audit log down to the configured
// retention window. Scheduled nightly, but a payload may override the window.
type CleanupAuditEntriesHandler struct {
	repo      audit.Repository
	jobConfig config.JobConfig
}

func NewCleanupAuditEntriesHandler(repo audit.Repository, jobConfig config.JobConfig) *CleanupAuditEntriesHandler {
	return &CleanupAuditEntriesHandler{
		repo:      repo,
		jobConfig: jobConfig,
	}
}

func (h *CleanupAuditEntriesHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.AuditCleanupPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("Failed to unmarshal audit cleanup payload, using configured retention", err)
	}

	days := payload.RetentionDays
	if days <= 0 {
		days = h.jobConfig.AuditRetentionDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	logger.Info("Starting audit log cleanup", map[string]interface{}{
		"retention_days": days,
		"cutoff":         cutoff.Format(time.RFC3339),
	})

	deleted, err := h.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cleanup audit entries: %w", err)
	}

	logger.Info("Completed audit log cleanup", map[string]interface{}{
		"retention_days": days,
		"deleted_count":  deleted,
	})
	return nil
}
