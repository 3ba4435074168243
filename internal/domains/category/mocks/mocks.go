package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared"
)

// CategoryRepositoryMock is a testify mock of category.CategoryRepository.
type CategoryRepositoryMock struct {
	mock.Mock
}

var _ category.CategoryRepository = (*CategoryRepositoryMock)(nil)

func (m *CategoryRepositoryMock) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *CategoryRepositoryMock) CommitTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *CategoryRepositoryMock) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *CategoryRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	cat, _ := args.Get(0).(*category.Category)
	return cat, args.Error(1)
}

func (m *CategoryRepositoryMock) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	args := m.Called(ctx, slug)
	cat, _ := args.Get(0).(*category.Category)
	return cat, args.Error(1)
}

func (m *CategoryRepositoryMock) GetAll(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]category.Category)
	return categories, args.Error(1)
}

func (m *CategoryRepositoryMock) List(ctx context.Context, filter *category.Filter) ([]category.Category, error) {
	args := m.Called(ctx, filter)
	categories, _ := args.Get(0).([]category.Category)
	return categories, args.Error(1)
}

func (m *CategoryRepositoryMock) GetChildren(ctx context.Context, parentID uuid.UUID) ([]category.Category, error) {
	args := m.Called(ctx, parentID)
	categories, _ := args.Get(0).([]category.Category)
	return categories, args.Error(1)
}

func (m *CategoryRepositoryMock) GetByIDWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, tx, id)
	cat, _ := args.Get(0).(*category.Category)
	return cat, args.Error(1)
}

func (m *CategoryRepositoryMock) GetDetailWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*category.CategoryDetail, error) {
	args := m.Called(ctx, tx, id)
	detail, _ := args.Get(0).(*category.CategoryDetail)
	return detail, args.Error(1)
}

func (m *CategoryRepositoryMock) GetParentIDWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*uuid.UUID, bool, error) {
	args := m.Called(ctx, tx, id)
	parentID, _ := args.Get(0).(*uuid.UUID)
	return parentID, args.Bool(1), args.Error(2)
}

func (m *CategoryRepositoryMock) ExistsBySlugWithTx(ctx context.Context, tx pgx.Tx, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepositoryMock) CountActiveChildrenWithTx(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, parentID)
	return args.Int(0), args.Error(1)
}

func (m *CategoryRepositoryMock) CreateWithTx(ctx context.Context, tx pgx.Tx, entity *category.Category) error {
	args := m.Called(ctx, tx, entity)
	return args.Error(0)
}

func (m *CategoryRepositoryMock) UpdateWithTx(ctx context.Context, tx pgx.Tx, entity *category.Category, expectedUpdatedAt time.Time) error {
	args := m.Called(ctx, tx, entity, expectedUpdatedAt)
	return args.Error(0)
}

func (m *CategoryRepositoryMock) RemoveWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedUpdatedAt time.Time) error {
	args := m.Called(ctx, tx, id, expectedUpdatedAt)
	return args.Error(0)
}

// ProductCounterMock is a testify mock of category.ProductCounter.
type ProductCounterMock struct {
	mock.Mock
}

var _ category.ProductCounter = (*ProductCounterMock)(nil)

func (m *ProductCounterMock) CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *ProductCounterMock) CountAllByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *ProductCounterMock) CountByCategories(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, categoryIDs)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

func (m *ProductCounterMock) CountActiveByCategories(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, categoryIDs)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

// AuditRecorderMock is a testify mock of category.AuditRecorder.
type AuditRecorderMock struct {
	mock.Mock
}

var _ category.AuditRecorder = (*AuditRecorderMock)(nil)

func (m *AuditRecorderMock) Record(ctx context.Context, entry shared.AuditEntryPayload) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
