package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
)

// BalanceRepo implements ports.BalanceRepository.
type BalanceRepo struct {
	pool Pool
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

const balanceColumns = `user_key, balance, total_purchased, total_consumed, last_purchase_at, created_at, updated_at`

func scanBalance(row pgx.Row) (*domain.UserBalance, error) {
	b := &domain.UserBalance{}
	err := row.Scan(
		&b.UserKey, &b.Balance, &b.TotalPurchased, &b.TotalConsumed,
		&b.LastPurchaseAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// EnsureWithGrant creates the account row with the free grant if absent.
// ON CONFLICT DO NOTHING makes concurrent first requests grant at most once.
func (r *BalanceRepo) EnsureWithGrant(ctx context.Context, userKey string, grantTokens int64) (*domain.UserBalance, error) {
	insert := `INSERT INTO user_balances (user_key, balance, total_purchased, total_consumed, created_at, updated_at)
		VALUES ($1, $2, $2, 0, NOW(), NOW())
		ON CONFLICT (user_key) DO NOTHING`

	if _, err := r.pool.Exec(ctx, insert, userKey, grantTokens); err != nil {
		return nil, fmt.Errorf("ensure balance: %w", err)
	}

	query := `SELECT ` + balanceColumns + ` FROM user_balances WHERE user_key = $1`
	b, err := scanBalance(r.pool.QueryRow(ctx, query, userKey))
	if err != nil {
		return nil, fmt.Errorf("get balance after ensure: %w", err)
	}
	return b, nil
}

// Get fetches the balance for a user key, or nil when no row exists.
func (r *BalanceRepo) Get(ctx context.Context, userKey string) (*domain.UserBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM user_balances WHERE user_key = $1`

	b, err := scanBalance(r.pool.QueryRow(ctx, query, userKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// Credit adds qty tokens to balance and total_purchased in one statement.
func (r *BalanceRepo) Credit(ctx context.Context, userKey string, qty int64) (*domain.UserBalance, error) {
	query := `UPDATE user_balances
		SET balance = balance + $1,
			total_purchased = total_purchased + $1,
			last_purchase_at = NOW(),
			updated_at = NOW()
		WHERE user_key = $2
		RETURNING ` + balanceColumns

	b, err := scanBalance(r.pool.QueryRow(ctx, query, qty, userKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("credit balance: user %s not found", userKey)
		}
		return nil, fmt.Errorf("credit balance: %w", err)
	}
	return b, nil
}

// Debit subtracts qty only when the balance covers it. The WHERE clause
// makes check and subtract one atomic statement, so concurrent debits
// never take the balance negative.
func (r *BalanceRepo) Debit(ctx context.Context, userKey string, qty int64) (ports.DebitOutcome, error) {
	query := `UPDATE user_balances
		SET balance = balance - $1,
			total_consumed = total_consumed + $1,
			updated_at = NOW()
		WHERE user_key = $2 AND balance >= $1
		RETURNING balance`

	var remaining int64
	err := r.pool.QueryRow(ctx, query, qty, userKey).Scan(&remaining)
	if err == nil {
		return ports.DebitOutcome{OK: true, Balance: remaining}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return ports.DebitOutcome{}, fmt.Errorf("debit balance: %w", err)
	}

	// Lost the condition: report the current balance for the error payload.
	var current int64
	err = r.pool.QueryRow(ctx,
		`SELECT balance FROM user_balances WHERE user_key = $1`, userKey,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ports.DebitOutcome{OK: false, Balance: 0}, nil
		}
		return ports.DebitOutcome{}, fmt.Errorf("read balance after failed debit: %w", err)
	}
	return ports.DebitOutcome{OK: false, Balance: current}, nil
}
