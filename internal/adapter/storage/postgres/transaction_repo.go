package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
)

// TransactionRepo implements ports.TransactionRepository. Amounts are
// stored as integer minor units (kobo) to avoid numeric round-trips.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const uniqueViolation = "23505"

func amountMinor(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

// Create inserts a new pending transaction. A reference collision maps
// to ports.ErrDuplicateReference so the caller can retry with a new one.
func (r *TransactionRepo) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions
		(reference, user_key, amount_minor, currency, token_qty, status, credit_applied, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		tx.Reference, tx.UserKey, amountMinor(tx.Amount), tx.Currency,
		tx.TokenQty, tx.Status, tx.CreditApplied, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicateReference
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByReference fetches a transaction, or nil when the reference is unknown.
func (r *TransactionRepo) GetByReference(ctx context.Context, reference string) (*domain.PaymentTransaction, error) {
	query := `SELECT reference, user_key, amount_minor, currency, token_qty, status,
			gateway_payload, credit_applied, created_at, updated_at, completed_at
		FROM payment_transactions WHERE reference = $1`

	tx, err := r.scanTransaction(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// UpdateStatusFrom transitions a transaction only when it still has the
// expected status. The condition in the WHERE clause is what guarantees
// a single winner among concurrent verifications.
func (r *TransactionRepo) UpdateStatusFrom(ctx context.Context, reference string, from, to domain.PaymentStatus, payload []byte) (bool, error) {
	query := `UPDATE payment_transactions
		SET status = $1,
			gateway_payload = COALESCE($2, gateway_payload),
			completed_at = CASE WHEN $1 IN ('successful', 'failed', 'cancelled') THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE reference = $3 AND status = $4`

	tag, err := r.pool.Exec(ctx, query, to, payload, reference, from)
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkCredited flips credit_applied exactly once per reference.
func (r *TransactionRepo) MarkCredited(ctx context.Context, reference string) (bool, error) {
	query := `UPDATE payment_transactions
		SET credit_applied = TRUE, updated_at = NOW()
		WHERE reference = $1 AND credit_applied = FALSE`

	tag, err := r.pool.Exec(ctx, query, reference)
	if err != nil {
		return false, fmt.Errorf("mark transaction credited: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UnmarkCredited reverts credit_applied so the row becomes visible to
// ListUncredited again after a failed credit.
func (r *TransactionRepo) UnmarkCredited(ctx context.Context, reference string) error {
	query := `UPDATE payment_transactions
		SET credit_applied = FALSE, updated_at = NOW()
		WHERE reference = $1`

	if _, err := r.pool.Exec(ctx, query, reference); err != nil {
		return fmt.Errorf("unmark transaction credited: %w", err)
	}
	return nil
}

// CancelExpired moves stale pending transactions to cancelled.
func (r *TransactionRepo) CancelExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE payment_transactions
		SET status = 'cancelled', completed_at = NOW(), updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cancel expired transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListUncredited returns successful transactions still waiting for their
// token credit, oldest first.
func (r *TransactionRepo) ListUncredited(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error) {
	query := `SELECT reference, user_key, amount_minor, currency, token_qty, status,
			gateway_payload, credit_applied, created_at, updated_at, completed_at
		FROM payment_transactions
		WHERE status = 'successful' AND credit_applied = FALSE
		ORDER BY created_at ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list uncredited transactions: %w", err)
	}
	defer rows.Close()

	var out []*domain.PaymentTransaction
	for rows.Next() {
		tx, err := r.scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan uncredited transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uncredited transactions: %w", err)
	}
	return out, nil
}

func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.PaymentTransaction, error) {
	tx := &domain.PaymentTransaction{}
	var minor int64
	err := row.Scan(
		&tx.Reference, &tx.UserKey, &minor, &tx.Currency, &tx.TokenQty,
		&tx.Status, &tx.GatewayPayload, &tx.CreditApplied,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	tx.Amount = decimal.New(minor, -2)
	return tx, nil
}
