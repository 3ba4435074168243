package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/domains/audit"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/logger"
)

// RecordAuditEntryHandler drains queued audit payloads into the audit store.
type RecordAuditEntryHandler struct {
	repo audit.Repository
}

func NewRecordAuditEntryHandler(repo audit.Repository) *RecordAuditEntryHandler {
	return &RecordAuditEntryHandler{repo: repo}
}

func (h *RecordAuditEntryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.AuditEntryPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		logger.Error("Failed to unmarshal audit entry payload", err)
		return asynq.SkipRetry
	}

	entry, err := audit.FromPayload(payload)
	if err != nil {
		// Bad identifiers never become valid on retry.
		logger.ErrorFields("Rejected audit entry payload", err, map[string]interface{}{
			"category_id": payload.CategoryID,
			"actor_id":    payload.ActorID,
		})
		return asynq.SkipRetry
	}

	if err := h.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	logger.Info("Recorded audit entry", map[string]interface{}{
		"category_id": entry.CategoryID.String(),
		"action":      string(entry.Action),
	})
	return nil
}
