package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"catalog-backend/internal/domains/category"
)

// CategoryServiceMock is a testify mock of category.CategoryService for
// handler tests.
type CategoryServiceMock struct {
	mock.Mock
}

var _ category.CategoryService = (*CategoryServiceMock)(nil)

func (m *CategoryServiceMock) Create(ctx context.Context, actorID uuid.UUID, req *category.CreateCategoryReq) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, actorID, req)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) GetBySlug(ctx context.Context, slug string) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, slug)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) List(ctx context.Context, filter *category.Filter) (*category.CategoryListResp, error) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*category.CategoryListResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) GetPath(ctx context.Context, id uuid.UUID) (*category.CategoryPathResp, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*category.CategoryPathResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) GetTree(ctx context.Context, rootID *uuid.UUID) (*category.CategoryTreeResp, error) {
	args := m.Called(ctx, rootID)
	resp, _ := args.Get(0).(*category.CategoryTreeResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) GetStats(ctx context.Context) (*category.CategoryStatsResp, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*category.CategoryStatsResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *category.UpdateCategoryReq) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, actorID, id, req)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) Move(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *category.MoveCategoryReq) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, actorID, id, req)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) Activate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, actorID, id)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) Deactivate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*category.CategoryDetailResp, error) {
	args := m.Called(ctx, actorID, id)
	resp, _ := args.Get(0).(*category.CategoryDetailResp)
	return resp, args.Error(1)
}

func (m *CategoryServiceMock) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*category.DeleteCategoryResp, error) {
	args := m.Called(ctx, actorID, id)
	resp, _ := args.Get(0).(*category.DeleteCategoryResp)
	return resp, args.Error(1)
}
