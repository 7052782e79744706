package ports

import (
	"context"
	"errors"
	"time"

	"dataset-billing/internal/core/domain"
)

// ErrDuplicateReference is returned by CreateTransaction when the
// generated reference already exists. Callers retry with a fresh one.
var ErrDuplicateReference = errors.New("duplicate transaction reference")

// DebitOutcome reports the result of a conditional debit attempt.
type DebitOutcome struct {
	// OK is true when the debit was applied atomically.
	OK bool
	// Balance is the post-debit balance when OK, or the current balance
	// that was insufficient when !OK.
	Balance int64
}

// BalanceRepository persists per-user token accounts. All mutating
// operations must be safe under concurrent callers for the same user key.
type BalanceRepository interface {
	// EnsureWithGrant creates the balance row for userKey if absent,
	// seeding it with grantTokens. It is a no-op when the row exists.
	// Returns the balance after the call.
	EnsureWithGrant(ctx context.Context, userKey string, grantTokens int64) (*domain.UserBalance, error)

	// Get returns the balance for userKey, or nil when no row exists.
	Get(ctx context.Context, userKey string) (*domain.UserBalance, error)

	// Credit adds qty tokens to userKey's balance and total_purchased.
	// The row must already exist.
	Credit(ctx context.Context, userKey string, qty int64) (*domain.UserBalance, error)

	// Debit subtracts qty tokens only if the current balance covers it,
	// in a single atomic compare-and-set.
	Debit(ctx context.Context, userKey string, qty int64) (DebitOutcome, error)
}

// TransactionRepository persists purchase attempts keyed by reference.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.PaymentTransaction) error

	// GetByReference returns nil when the reference is unknown.
	GetByReference(ctx context.Context, reference string) (*domain.PaymentTransaction, error)

	// UpdateStatusFrom transitions reference from the expected status to
	// the new one, recording the gateway payload. Returns false when the
	// row was not in the expected status (another caller won the race).
	UpdateStatusFrom(ctx context.Context, reference string, from, to domain.PaymentStatus, payload []byte) (bool, error)

	// MarkCredited flips credit_applied false -> true for reference.
	// Returns false when the flag was already set.
	MarkCredited(ctx context.Context, reference string) (bool, error)

	// UnmarkCredited reverts the credit_applied flag after a failed
	// credit so the reconciler can find the row again.
	UnmarkCredited(ctx context.Context, reference string) error

	// CancelExpired moves every pending transaction created before the
	// cutoff to cancelled, returning how many rows changed.
	CancelExpired(ctx context.Context, cutoff time.Time) (int64, error)

	// ListUncredited returns successful transactions whose tokens have
	// not been credited yet, oldest first, capped at limit.
	ListUncredited(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error)
}

// ConsumptionRepository is the append-only usage log.
type ConsumptionRepository interface {
	Append(ctx context.Context, entry *domain.ConsumptionEntry) error
	ListByUser(ctx context.Context, userKey string, limit int) ([]*domain.ConsumptionEntry, error)
}
