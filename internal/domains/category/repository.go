package category

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"catalog-backend/internal/shared"
)

// =====================================================
// CATEGORY REPOSITORY INTERFACE
// =====================================================

// CategoryDetail bundles a node with the relations delete and
// deactivation validation read, fetched under one transaction.
type CategoryDetail struct {
	Category       Category
	Children       []Category
	ActiveChildren int
}

// CategoryRepository is the store behind the lifecycle service. Writes
// exist only as WithTx variants: every mutation runs read→validate→write
// inside one transaction, with updated-at guards on update and remove.
type CategoryRepository interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// Snapshot reads
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	GetAll(ctx context.Context) ([]Category, error)
	List(ctx context.Context, filter *Filter) ([]Category, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// Transaction-scoped validation reads
	GetByIDWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*Category, error)
	GetDetailWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*CategoryDetail, error)
	GetParentIDWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*uuid.UUID, bool, error)
	ExistsBySlugWithTx(ctx context.Context, tx pgx.Tx, slug string, excludeID *uuid.UUID) (bool, error)
	CountActiveChildrenWithTx(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) (int, error)

	// Writes (transaction-scoped only)
	CreateWithTx(ctx context.Context, tx pgx.Tx, category *Category) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, category *Category, expectedUpdatedAt time.Time) error
	RemoveWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedUpdatedAt time.Time) error
}

// =====================================================
// PRODUCT COLLABORATOR INTERFACE
// =====================================================

// ProductCounter exposes the product domain to category validation and
// assembly. Simplified on purpose: the category domain only ever counts.
type ProductCounter interface {
	CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	CountAllByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)

	// Bulk variants keep tree assembly and stats at one query instead
	// of one per node.
	CountByCategories(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error)
	CountActiveByCategories(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// =====================================================
// AUDIT COLLABORATOR INTERFACE
// =====================================================

// AuditRecorder accepts audit entries for successful mutations. The
// service treats it as fire-and-forget: failures are logged, never
// surfaced to the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry shared.AuditEntryPayload) error
}
