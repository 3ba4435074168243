package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"catalog-backend/internal/shared"
)

// Entry is one persisted category mutation. Entries are written by the
// worker from queued payloads, never synchronously from the API path.
type Entry struct {
	ID            uuid.UUID
	CategoryID    uuid.UUID
	ActorID       uuid.UUID
	ActorIP       *string
	Action        shared.AuditAction
	ChangedFields pq.StringArray
	OldValues     json.RawMessage
	NewValues     json.RawMessage
	CreatedAt     time.Time
}

// Repository is the audit log store.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]Entry, error)
	// DeleteOlderThan purges entries created before cutoff and reports
	// how many rows went away.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// FromPayload maps a queued payload onto a persistable entry.
func FromPayload(payload shared.AuditEntryPayload) (*Entry, error) {
	categoryID, err := uuid.Parse(payload.CategoryID)
	if err != nil {
		return nil, err
	}
	actorID, err := uuid.Parse(payload.ActorID)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:            uuid.New(),
		CategoryID:    categoryID,
		ActorID:       actorID,
		Action:        payload.Action,
		ChangedFields: payload.ChangedFields,
		OldValues:     payload.OldValues,
		NewValues:     payload.NewValues,
		CreatedAt:     payload.OccurredAt,
	}
	if payload.ActorIP != "" {
		ip := payload.ActorIP
		entry.ActorIP = &ip
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return entry, nil
}
