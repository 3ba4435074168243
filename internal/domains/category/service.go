package category

import (
	"context"

	"github.com/google/uuid"
)

// =====================================================
// CATEGORY SERVICE INTERFACE
// =====================================================

// CategoryService is the lifecycle surface handlers depend on. Every
// mutation validates against the tree engine inside one transaction and
// returns the assembled view of the touched node; every failure is a
// typed *Error. Mutations take the acting admin so the audit trail can
// attribute the change.
type CategoryService interface {
	// Create operations
	Create(ctx context.Context, actorID uuid.UUID, req *CreateCategoryReq) (*CategoryDetailResp, error)

	// Read operations
	GetByID(ctx context.Context, id uuid.UUID) (*CategoryDetailResp, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryDetailResp, error)
	List(ctx context.Context, filter *Filter) (*CategoryListResp, error)
	GetPath(ctx context.Context, id uuid.UUID) (*CategoryPathResp, error)
	GetTree(ctx context.Context, rootID *uuid.UUID) (*CategoryTreeResp, error)
	GetStats(ctx context.Context) (*CategoryStatsResp, error)

	// Update operations
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *UpdateCategoryReq) (*CategoryDetailResp, error)
	Move(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *MoveCategoryReq) (*CategoryDetailResp, error)
	Activate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*CategoryDetailResp, error)
	Deactivate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*CategoryDetailResp, error)

	// Delete reports the removal method: soft when active products still
	// reference the node, hard otherwise.
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*DeleteCategoryResp, error)
}
