package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/logger"
)

const categoryColumns = `id, name, slug, description, parent_id, sort_order, is_active, created_at, updated_at`

const (
	snapshotCacheKey = "categories:snapshot"
	snapshotCacheTTL = time.Minute
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the category store. cache may be nil;
// reads then always hit the database.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.CategoryRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// =====================================================
// TRANSACTION MANAGEMENT
// =====================================================

func (r *postgresRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// CommitTx commits and drops cached snapshots. Only mutations commit
// transactions here, so this is exactly the invalidation point.
func (r *postgresRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.invalidateCache(ctx)
	return nil
}

func (r *postgresRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Rollback(ctx)
}

func (r *postgresRepository) invalidateCache(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePattern(ctx, "categories:*"); err != nil {
		logger.Warn("category cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// =====================================================
// SNAPSHOT READS
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, slug))
}

// GetAll returns the flat tree snapshot, briefly cached because tree
// assembly, stats, and path reads tolerate recent-but-stale data.
func (r *postgresRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	if r.cache != nil {
		var cached []category.Category
		found, err := r.cache.Get(ctx, snapshotCacheKey, &cached)
		if err != nil {
			logger.Warn("category snapshot cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else if found {
			return cached, nil
		}
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories, err := scanCategories(rows)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, snapshotCacheKey, categories, snapshotCacheTTL); err != nil {
			logger.Warn("category snapshot cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return categories, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *category.Filter) ([]category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`

	var clauses []string
	var args []interface{}
	if filter != nil {
		if filter.IsActive != nil {
			args = append(args, *filter.IsActive)
			clauses = append(clauses, fmt.Sprintf("is_active = $%d", len(args)))
		}
		if filter.RootsOnly {
			clauses = append(clauses, "parent_id IS NULL")
		} else if filter.ParentID != nil {
			args = append(args, *filter.ParentID)
			clauses = append(clauses, fmt.Sprintf("parent_id = $%d", len(args)))
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + utils.JoinWithAnd(clauses)
	}
	query += " ORDER BY sort_order, name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (r *postgresRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = $1 ORDER BY sort_order, name`
	rows, err := r.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	defer rows.Close()

	return scanCategories(rows)
}

// =====================================================
// TRANSACTION-SCOPED VALIDATION READS
// =====================================================

func (r *postgresRepository) GetByIDWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(tx.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetDetailWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*category.CategoryDetail, error) {
	node, err := r.GetByIDWithTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = $1 ORDER BY sort_order, name`
	rows, err := tx.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get children: %w", err)
	}
	defer rows.Close()

	children, err := scanCategories(rows)
	if err != nil {
		return nil, err
	}

	detail := &category.CategoryDetail{
		Category: *node,
		Children: children,
	}
	for i := range children {
		if children[i].IsActive {
			detail.ActiveChildren++
		}
	}
	return detail, nil
}

func (r *postgresRepository) GetParentIDWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*uuid.UUID, bool, error) {
	return scanParentID(tx.QueryRow(ctx, `SELECT parent_id FROM categories WHERE id = $1`, id))
}

func (r *postgresRepository) ExistsBySlugWithTx(ctx context.Context, tx pgx.Tx, slug string, excludeID *uuid.UUID) (bool, error) {
	return existsBySlug(ctx, tx, slug, excludeID)
}

func (r *postgresRepository) CountActiveChildrenWithTx(ctx context.Context, tx pgx.Tx, parentID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM categories WHERE parent_id = $1 AND is_active = true`
	if err := tx.QueryRow(ctx, query, parentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active children: %w", err)
	}
	return count, nil
}

// =====================================================
// WRITES (transaction-scoped)
// =====================================================

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, entity *category.Category) error {
	query := `
		INSERT INTO categories (
			id, name, slug, description, parent_id,
			sort_order, is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		entity.ID,
		entity.Name,
		entity.Slug,
		entity.Description,
		entity.ParentID,
		entity.SortOrder,
		entity.IsActive,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		if isSlugConstraint(err) {
			logger.Error("CreateWithTx: duplicate slug", err)
			return category.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateWithTx persists the full row guarded by the updated-at check.
// Zero rows affected means the row changed or vanished since our read.
func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, entity *category.Category, expectedUpdatedAt time.Time) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, parent_id = $4,
		    sort_order = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND updated_at = $9
	`

	result, err := tx.Exec(ctx, query,
		entity.Name,
		entity.Slug,
		entity.Description,
		entity.ParentID,
		entity.SortOrder,
		entity.IsActive,
		entity.UpdatedAt,
		entity.ID,
		expectedUpdatedAt,
	)
	if err != nil {
		if isSlugConstraint(err) {
			logger.Error("UpdateWithTx: duplicate slug", err)
			return category.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrUpdateConflict
	}
	return nil
}

func (r *postgresRepository) RemoveWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, expectedUpdatedAt time.Time) error {
	query := `DELETE FROM categories WHERE id = $1 AND updated_at = $2`

	result, err := tx.Exec(ctx, query, id, expectedUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrUpdateConflict
	}
	return nil
}

// =====================================================
// HELPERS
// =====================================================

// queryRower covers both pool and tx for shared read helpers.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func existsBySlug(ctx context.Context, q queryRower, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		query := `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`
		err = q.QueryRow(ctx, query, slug, *excludeID).Scan(&exists)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`
		err = q.QueryRow(ctx, query, slug).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) scanOne(row pgx.Row) (*category.Category, error) {
	entity := &category.Category{}
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Slug,
		&entity.Description,
		&entity.ParentID,
		&entity.SortOrder,
		&entity.IsActive,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return entity, nil
}

func scanCategories(rows pgx.Rows) ([]category.Category, error) {
	categories := make([]category.Category, 0)
	for rows.Next() {
		var entity category.Category
		err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Slug,
			&entity.Description,
			&entity.ParentID,
			&entity.SortOrder,
			&entity.IsActive,
			&entity.CreatedAt,
			&entity.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

func scanParentID(row pgx.Row) (*uuid.UUID, bool, error) {
	var parentID *uuid.UUID
	if err := row.Scan(&parentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get parent id: %w", err)
	}
	return parentID, true, nil
}

func isSlugConstraint(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName == "idx_categories_slug"
	}
	return false
}
