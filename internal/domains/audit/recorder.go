package audit

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
)

// QueueRecorder hands audit payloads to asynq so the API path never
// blocks on the audit store.
type QueueRecorder struct {
	client *asynq.Client
}

func NewQueueRecorder(client *asynq.Client) category.AuditRecorder {
	return &QueueRecorder{client: client}
}

func (r *QueueRecorder) Record(ctx context.Context, entry shared.AuditEntryPayload) error {
	task, err := utils.MarshalTask(shared.TypeRecordAuditEntry, entry)
	if err != nil {
		return fmt.Errorf("failed to build audit task: %w", err)
	}

	_, err = r.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueAudit),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue audit task: %w", err)
	}
	return nil
}
