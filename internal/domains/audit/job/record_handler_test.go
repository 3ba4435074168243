package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/config"
	"catalog-backend/internal/domains/audit"
	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
)

type auditRepositoryMock struct {
	mock.Mock
}

var _ audit.Repository = (*auditRepositoryMock)(nil)

func (m *auditRepositoryMock) Create(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *auditRepositoryMock) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]audit.Entry, error) {
	args := m.Called(ctx, categoryID, limit)
	entries, _ := args.Get(0).([]audit.Entry)
	return entries, args.Error(1)
}

func (m *auditRepositoryMock) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func recordTask(t *testing.T, payload shared.AuditEntryPayload) *asynq.Task {
	t.Helper()
	task, err := utils.MarshalTask(shared.TypeRecordAuditEntry, payload)
	require.NoError(t, err)
	return task
}

func TestRecordAuditEntryHandler_ProcessTask(t *testing.T) {
	repo := new(auditRepositoryMock)
	handler := NewRecordAuditEntryHandler(repo)
	categoryID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.CategoryID == categoryID && e.Action == shared.AuditActionHardDeleted
	})).Return(nil)

	err := handler.ProcessTask(context.Background(), recordTask(t, shared.AuditEntryPayload{
		CategoryID: categoryID.String(),
		ActorID:    uuid.NewString(),
		Action:     shared.AuditActionHardDeleted,
		OccurredAt: time.Now().UTC(),
	}))

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordAuditEntryHandler_SkipsMalformedPayload(t *testing.T) {
	repo := new(auditRepositoryMock)
	handler := NewRecordAuditEntryHandler(repo)

	err := handler.ProcessTask(context.Background(), asynq.NewTask(shared.TypeRecordAuditEntry, []byte("{not json")))

	// Malformed payloads are dropped, not retried.
	assert.ErrorIs(t, err, asynq.SkipRetry)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordAuditEntryHandler_SkipsBadIdentifiers(t *testing.T) {
	repo := new(auditRepositoryMock)
	handler := NewRecordAuditEntryHandler(repo)

	err := handler.ProcessTask(context.Background(), recordTask(t, shared.AuditEntryPayload{
		CategoryID: "not-a-uuid",
		ActorID:    uuid.NewString(),
		Action:     shared.AuditActionCreated,
	}))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordAuditEntryHandler_RetriesOnStoreFailure(t *testing.T) {
	repo := new(auditRepositoryMock)
	handler := NewRecordAuditEntryHandler(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := handler.ProcessTask(context.Background(), recordTask(t, shared.AuditEntryPayload{
		CategoryID: uuid.NewString(),
		ActorID:    uuid.NewString(),
		Action:     shared.AuditActionCreated,
	}))

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry, "store failures must stay retryable")
}

func TestCleanupAuditEntriesHandler_ProcessTask(t *testing.T) {
	t.Run("uses configured retention", func(t *testing.T) {
		repo := new(auditRepositoryMock)
		handler := NewCleanupAuditEntriesHandler(repo, config.JobConfig{AuditRetentionDays: 90})

		repo.On("DeleteOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
			want := time.Now().UTC().AddDate(0, 0, -90)
			return cutoff.Sub(want).Abs() < time.Minute
		})).Return(int64(12), nil)

		task, err := utils.MarshalTask(shared.TypeCleanupAuditEntries, shared.AuditCleanupPayload{})
		require.NoError(t, err)

		require.NoError(t, handler.ProcessTask(context.Background(), task))
		repo.AssertExpectations(t)
	})

	t.Run("payload overrides retention", func(t *testing.T) {
		repo := new(auditRepositoryMock)
		handler := NewCleanupAuditEntriesHandler(repo, config.JobConfig{AuditRetentionDays: 90})

		repo.On("DeleteOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
			want := time.Now().UTC().AddDate(0, 0, -7)
			return cutoff.Sub(want).Abs() < time.Minute
		})).Return(int64(3), nil)

		task, err := utils.MarshalTask(shared.TypeCleanupAuditEntries, shared.AuditCleanupPayload{RetentionDays: 7})
		require.NoError(t, err)

		require.NoError(t, handler.ProcessTask(context.Background(), task))
		repo.AssertExpectations(t)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		repo := new(auditRepositoryMock)
		handler := NewCleanupAuditEntriesHandler(repo, config.JobConfig{AuditRetentionDays: 90})

		repo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

		task, err := utils.MarshalTask(shared.TypeCleanupAuditEntries, shared.AuditCleanupPayload{})
		require.NoError(t, err)

		assert.Error(t, handler.ProcessTask(context.Background(), task))
	})
}
