package postgres

import (
	"context"
	"fmt"

	"dataset-billing/internal/core/domain"
)

// ConsumptionRepo implements ports.ConsumptionRepository.
type ConsumptionRepo struct {
	pool Pool
}

// NewConsumptionRepo creates a new ConsumptionRepo.
func NewConsumptionRepo(pool Pool) *ConsumptionRepo {
	return &ConsumptionRepo{pool: pool}
}

// Append inserts one usage record. The log is append-only.
func (r *ConsumptionRepo) Append(ctx context.Context, entry *domain.ConsumptionEntry) error {
	query := `INSERT INTO consumption_log
		(id, user_key, token_qty, service_kind, work_item_id, description, consumed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.UserKey, entry.TokenQty, entry.ServiceKind,
		entry.WorkItemID, entry.Description, entry.ConsumedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption entry: %w", err)
	}
	return nil
}

// ListByUser returns the most recent usage entries for a user key.
func (r *ConsumptionRepo) ListByUser(ctx context.Context, userKey string, limit int) ([]*domain.ConsumptionEntry, error) {
	query := `SELECT id, user_key, token_qty, service_kind, work_item_id, description, consumed_at
		FROM consumption_log
		WHERE user_key = $1
		ORDER BY consumed_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userKey, limit)
	if err != nil {
		return nil, fmt.Errorf("list consumption entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.ConsumptionEntry
	for rows.Next() {
		e := &domain.ConsumptionEntry{}
		if err := rows.Scan(
			&e.ID, &e.UserKey, &e.TokenQty, &e.ServiceKind,
			&e.WorkItemID, &e.Description, &e.ConsumedAt,
		); err != nil {
			return nil, fmt.Errorf("scan consumption entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumption entries: %w", err)
	}
	return out, nil
}
