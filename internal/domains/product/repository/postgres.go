package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-backend/internal/domains/category"
)

// =====================================================
// PRODUCT COUNTER IMPLEMENTATION
// =====================================================

// postgresProductCounter answers the category domain's product-count
// questions straight from the products table. The category core never
// reads product rows, only counts.
type postgresProductCounter struct {
	pool *pgxpool.Pool
}

func NewPostgresProductCounter(pool *pgxpool.Pool) category.ProductCounter {
	return &postgresProductCounter{
		pool: pool,
	}
}

func (r *postgresProductCounter) CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1 AND is_active = true`
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active products: %w", err)
	}
	return count, nil
}

func (r *postgresProductCounter) CountAllByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1`
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *postgresProductCounter) CountByCategories(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	query := `
		SELECT category_id, COUNT(*)
		FROM products
		WHERE category_id = ANY($1::uuid[])
		GROUP BY category_id
	`
	return r.countGrouped(ctx, query, categoryIDs)
}

func (r *postgresProductCounter) CountActiveByCategories(ctx context.Context, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	query := `
		SELECT category_id, COUNT(*)
		FROM products
		WHERE category_id = ANY($1::uuid[]) AND is_active = true
		GROUP BY category_id
	`
	return r.countGrouped(ctx, query, categoryIDs)
}

// countGrouped runs one grouped query for the whole id set. Categories
// without products simply have no row; callers treat a missing key as 0.
func (r *postgresProductCounter) countGrouped(ctx context.Context, query string, categoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID uuid.UUID
		var count int
		if err := rows.Scan(&categoryID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan product count: %w", err)
		}
		counts[categoryID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product counts: %w", err)
	}
	return counts, nil
}
