package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/pkg/apperror"
)

// LedgerServiceImpl implements ports.LedgerService. It is the only code
// path that applies the free first-use grant.
type LedgerServiceImpl struct {
	balanceRepo     ports.BalanceRepository
	consumptionRepo ports.ConsumptionRepository
	freeGrant       int64
	log             zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	balanceRepo ports.BalanceRepository,
	consumptionRepo ports.ConsumptionRepository,
	freeGrant int64,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		balanceRepo:     balanceRepo,
		consumptionRepo: consumptionRepo,
		freeGrant:       freeGrant,
		log:             log,
	}
}

// BalanceOf returns the account for userKey, creating it with the free
// grant on first sight. The repository's conditional insert guarantees
// the grant applies at most once even under concurrent first requests.
func (s *LedgerServiceImpl) BalanceOf(ctx context.Context, userKey string) (*domain.UserBalance, error) {
	if userKey == "" {
		return nil, apperror.Validation("user_key must not be empty")
	}

	b, err := s.balanceRepo.EnsureWithGrant(ctx, userKey, s.freeGrant)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("ensure balance: %w", err))
	}
	return b, nil
}

// Credit adds purchased tokens to an existing account.
func (s *LedgerServiceImpl) Credit(ctx context.Context, userKey string, qty int64) (*domain.UserBalance, error) {
	if qty <= 0 {
		return nil, apperror.Validation("credit quantity must be positive")
	}

	b, err := s.balanceRepo.Credit(ctx, userKey, qty)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("credit: %w", err))
	}

	s.log.Info().
		Str("user_key", userKey).
		Int64("qty", qty).
		Int64("balance", b.Balance).
		Msg("tokens credited")
	return b, nil
}

// Debit attempts an atomic conditional debit. An insufficient balance is
// a value in the outcome, not an error.
func (s *LedgerServiceImpl) Debit(ctx context.Context, userKey string, qty int64) (ports.DebitOutcome, error) {
	if qty <= 0 {
		return ports.DebitOutcome{}, apperror.Validation("debit quantity must be positive")
	}

	out, err := s.balanceRepo.Debit(ctx, userKey, qty)
	if err != nil {
		return ports.DebitOutcome{}, apperror.ErrStorage(fmt.Errorf("debit: %w", err))
	}
	return out, nil
}

// History returns the most recent consumption entries for userKey.
func (s *LedgerServiceImpl) History(ctx context.Context, userKey string, limit int) ([]*domain.ConsumptionEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	entries, err := s.consumptionRepo.ListByUser(ctx, userKey, limit)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("consumption history: %w", err))
	}
	return entries, nil
}
