package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/audit"
)

const auditColumns = "id, category_id, actor_id, actor_ip, action, changed_fields, old_values, new_values, created_at"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) audit.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, entry *audit.Entry) error {
	query := `
		INSERT INTO category_audit_log (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.CategoryID, entry.ActorID, entry.ActorIP,
		entry.Action, pq.Array(entry.ChangedFields),
		entry.OldValues, entry.NewValues, entry.CreatedAt,
	)
	if err != nil {
		log.Error().Err(err).
			Str("category_id", entry.CategoryID.String()).
			Str("action", string(entry.Action)).
			Msg("Failed to insert audit entry")
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + auditColumns + `
		FROM category_audit_log
		WHERE category_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]audit.Entry, 0)
	for rows.Next() {
		var entry audit.Entry
		err := rows.Scan(
			&entry.ID, &entry.CategoryID, &entry.ActorID, &entry.ActorIP,
			&entry.Action, pq.Array(&entry.ChangedFields),
			&entry.OldValues, &entry.NewValues, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}
	return entries, nil
}

func (r *postgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM category_audit_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
