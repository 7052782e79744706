package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/metrics"
	"dataset-billing/pkg/apperror"
)

// ConsumptionGuardImpl implements ports.ConsumptionGuard: debit first,
// then run the paid work, then log the usage.
type ConsumptionGuardImpl struct {
	pricing         *PricingPolicy
	ledger          ports.LedgerService
	consumptionRepo ports.ConsumptionRepository
	metrics         *metrics.Metrics
	log             zerolog.Logger
}

// NewConsumptionGuard creates a new ConsumptionGuardImpl.
func NewConsumptionGuard(
	pricing *PricingPolicy,
	ledger ports.LedgerService,
	consumptionRepo ports.ConsumptionRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) *ConsumptionGuardImpl {
	return &ConsumptionGuardImpl{
		pricing:         pricing,
		ledger:          ledger,
		consumptionRepo: consumptionRepo,
		metrics:         m,
		log:             log,
	}
}

// Consume debits the service cost, runs work, and appends the usage
// entry. A failed work call does not reverse the debit: the work may
// have consumed real external resources, so compensation is an explicit
// operator action.
func (g *ConsumptionGuardImpl) Consume(
	ctx context.Context,
	userKey string,
	kind domain.ServiceKind,
	workItemID *string,
	work func(context.Context) error,
) (*ports.ConsumeReceipt, error) {
	cost, err := g.pricing.CostOf(kind)
	if err != nil {
		return nil, err
	}

	// First sight of a user key applies the free grant before the debit.
	if _, err := g.ledger.BalanceOf(ctx, userKey); err != nil {
		return nil, err
	}

	out, err := g.ledger.Debit(ctx, userKey, cost)
	if err != nil {
		return nil, err
	}
	if !out.OK {
		g.metrics.DebitsRejected.Inc()
		return nil, apperror.ErrInsufficientTokens(cost, out.Balance)
	}

	if err := work(ctx); err != nil {
		g.log.Warn().Err(err).
			Str("user_key", userKey).
			Str("service_kind", string(kind)).
			Int64("cost", cost).
			Msg("paid work failed after debit, not reversing")
		return nil, err
	}

	desc := fmt.Sprintf("%s run", kind)
	entry := &domain.ConsumptionEntry{
		ID:          uuid.New(),
		UserKey:     userKey,
		TokenQty:    cost,
		ServiceKind: kind,
		WorkItemID:  workItemID,
		Description: &desc,
		ConsumedAt:  time.Now().UTC(),
	}
	if err := g.consumptionRepo.Append(ctx, entry); err != nil {
		// The debit and the work both happened; a missing log row is an
		// observability gap, not a billing fault.
		g.log.Error().Err(err).
			Str("user_key", userKey).
			Str("service_kind", string(kind)).
			Msg("consumption log append failed")
	}

	g.metrics.TokensConsumed.WithLabelValues(string(kind)).Add(float64(cost))
	return &ports.ConsumeReceipt{
		TokensConsumed:   cost,
		RemainingBalance: out.Balance,
	}, nil
}

// Quote reports the cost of kind against the user's current balance.
func (g *ConsumptionGuardImpl) Quote(ctx context.Context, userKey string, kind domain.ServiceKind) (*ports.UsageInfo, error) {
	cost, err := g.pricing.CostOf(kind)
	if err != nil {
		return nil, err
	}

	balance, err := g.ledger.BalanceOf(ctx, userKey)
	if err != nil {
		return nil, err
	}

	return &ports.UsageInfo{
		ServiceKind:    kind,
		TokenCost:      cost,
		CurrentBalance: balance.Balance,
		CanAfford:      balance.Balance >= cost,
	}, nil
}
