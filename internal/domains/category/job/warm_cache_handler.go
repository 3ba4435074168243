package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/domains/category"
	"catalog-backend/pkg/logger"
)

// WarmTreeCacheHandler reloads the category snapshot so tree reads after a
// cache flush hit Redis instead of Postgres.
type WarmTreeCacheHandler struct {
	repo category.CategoryRepository
}

func NewWarmTreeCacheHandler(repo category.CategoryRepository) *WarmTreeCacheHandler {
	return &WarmTreeCacheHandler{repo: repo}
}

func (h *WarmTreeCacheHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	categories, err := h.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("warm category tree cache: %w", err)
	}

	logger.Info("Warmed category tree cache", map[string]interface{}{
		"category_count": len(categories),
	})
	return nil
}
