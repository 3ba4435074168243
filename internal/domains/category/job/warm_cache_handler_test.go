package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/category/mocks"
	"catalog-backend/internal/shared"
)

func TestWarmTreeCacheHandler_ProcessTask(t *testing.T) {
	repo := new(mocks.CategoryRepositoryMock)
	handler := NewWarmTreeCacheHandler(repo)

	repo.On("GetAll", mock.Anything).Return([]category.Category{{Name: "Books"}}, nil)

	err := handler.ProcessTask(context.Background(), asynq.NewTask(shared.TypeWarmTreeCache, nil))

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestWarmTreeCacheHandler_SurfacesLoadFailure(t *testing.T) {
	repo := new(mocks.CategoryRepositoryMock)
	handler := NewWarmTreeCacheHandler(repo)

	repo.On("GetAll", mock.Anything).Return(nil, errors.New("connection refused"))

	err := handler.ProcessTask(context.Background(), asynq.NewTask(shared.TypeWarmTreeCache, nil))

	assert.Error(t, err)
}
