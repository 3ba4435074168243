package shared

import (
	"encoding/json"
	"time"
)

// Queue names. The worker weights high above default and default above
// low, so queue choice here is the task's priority.
const (
	QueueAudit       = "default"
	QueueMaintenance = "low"
)

// Task type names routed through asynq.
const (
	TypeRecordAuditEntry    = "audit:record_entry"
	TypeCleanupAuditEntries = "audit:cleanup_entries"
	TypeWarmTreeCache       = "category:warm_tree_cache"
)

// AuditAction enumerates recorded category mutations.
type AuditAction string

const (
	AuditActionCreated     AuditAction = "created"
	AuditActionUpdated     AuditAction = "updated"
	AuditActionMoved       AuditAction = "moved"
	AuditActionActivated   AuditAction = "activated"
	AuditActionDeactivated AuditAction = "deactivated"
	AuditActionSoftDeleted AuditAction = "soft_deleted"
	AuditActionHardDeleted AuditAction = "hard_deleted"
)

// AuditEntryPayload carries one category mutation from the API process to
// the worker that persists it. Lives here so the category service and the
// audit job handler share it without an import cycle.
type AuditEntryPayload struct {
	CategoryID    string          `json:"categoryId"`
	ActorID       string          `json:"actorId"`
	ActorIP       string          `json:"actorIp,omitempty"`
	Action        AuditAction     `json:"action"`
	ChangedFields []string        `json:"changedFields,omitempty"`
	OldValues     json.RawMessage `json:"oldValues,omitempty"`
	NewValues     json.RawMessage `json:"newValues,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// AuditCleanupPayload asks the worker to purge audit entries older than
// the retention window.
type AuditCleanupPayload struct {
	RetentionDays int       `json:"retentionDays"`
	EnqueuedAt    time.Time `json:"enqueuedAt"`
}

// TreeCacheWarmPayload triggers a rebuild of the cached category tree.
type TreeCacheWarmPayload struct {
	EnqueuedAt time.Time `json:"enqueuedAt"`
}
