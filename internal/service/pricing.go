package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dataset-billing/config"
	"dataset-billing/internal/core/domain"
	"dataset-billing/pkg/apperror"
)

// PricingPolicy converts between money and tokens and prices each
// service kind. Pure computation, no I/O; safe for concurrent use.
type PricingPolicy struct {
	currency    string
	rate        decimal.Decimal // tokens per major currency unit
	minAmount   decimal.Decimal
	maxAmount   decimal.Decimal
	strict      bool
	lowBal      int64
	criticalBal int64
	costs       map[domain.ServiceKind]int64
}

// NewPricingPolicy builds a policy from startup configuration.
func NewPricingPolicy(cfg config.PricingConfig) *PricingPolicy {
	return &PricingPolicy{
		currency:    cfg.Currency,
		rate:        decimal.NewFromFloat(cfg.TokensPerUnitMoney),
		minAmount:   decimal.NewFromFloat(cfg.MinPurchaseMoney),
		maxAmount:   decimal.NewFromFloat(cfg.MaxPurchaseMoney),
		strict:      cfg.StrictPricing,
		lowBal:      cfg.LowBalanceTokens,
		criticalBal: cfg.CriticalBalanceTokens,
		costs: map[domain.ServiceKind]int64{
			domain.ServiceAnalysis:        cfg.AnalysisCost,
			domain.ServiceTransform:       cfg.TransformCost,
			domain.ServicePremiumInsights: cfg.PremiumInsightsCost,
		},
	}
}

// Currency returns the single configured purchase currency.
func (p *PricingPolicy) Currency() string {
	return p.currency
}

// TokensFor converts a monetary amount to tokens, rounding down.
func (p *PricingPolicy) TokensFor(amount decimal.Decimal) int64 {
	return amount.Mul(p.rate).Floor().IntPart()
}

// AmountFor converts a token quantity back to money at two-decimal
// precision. Under strict pricing a quantity whose amount would not
// round-trip to the same quantity is rejected, so users never pay for
// tokens they do not receive.
func (p *PricingPolicy) AmountFor(tokenQty int64) (decimal.Decimal, error) {
	if tokenQty <= 0 {
		return decimal.Zero, apperror.Validation("token quantity must be positive")
	}

	amount := decimal.NewFromInt(tokenQty).Div(p.rate).Round(2)
	if p.strict && p.TokensFor(amount) != tokenQty {
		return decimal.Zero, apperror.Validation(fmt.Sprintf(
			"token quantity %d does not map to an exact amount at %s tokens per unit",
			tokenQty, p.rate.String()))
	}
	return amount, nil
}

// CostOf returns the token price of one invocation of kind.
func (p *PricingPolicy) CostOf(kind domain.ServiceKind) (int64, error) {
	cost, ok := p.costs[kind]
	if !ok {
		return 0, apperror.Validation(fmt.Sprintf("unknown service kind %q", kind))
	}
	return cost, nil
}

// ServiceCosts returns all configured per-service token costs.
func (p *PricingPolicy) ServiceCosts() map[domain.ServiceKind]int64 {
	out := make(map[domain.ServiceKind]int64, len(p.costs))
	for k, v := range p.costs {
		out[k] = v
	}
	return out
}

// ValidatePurchase checks the amount against the configured bounds.
func (p *PricingPolicy) ValidatePurchase(amount decimal.Decimal) error {
	if amount.LessThan(p.minAmount) {
		return apperror.Validation(fmt.Sprintf(
			"amount %s is below the minimum purchase of %s %s",
			amount.StringFixed(2), p.minAmount.StringFixed(2), p.currency))
	}
	if amount.GreaterThan(p.maxAmount) {
		return apperror.Validation(fmt.Sprintf(
			"amount %s exceeds the maximum purchase of %s %s",
			amount.StringFixed(2), p.maxAmount.StringFixed(2), p.currency))
	}
	return nil
}

// PricingExample pairs a sample amount with the tokens it buys.
type PricingExample struct {
	Amount   float64 `json:"amount"`
	TokenQty int64   `json:"token_qty"`
}

// Examples returns sample conversions for the public pricing endpoint.
func (p *PricingPolicy) Examples() []PricingExample {
	samples := []decimal.Decimal{
		p.minAmount,
		decimal.NewFromInt(500),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(5000),
		p.maxAmount,
	}

	out := make([]PricingExample, 0, len(samples))
	seen := make(map[string]bool)
	for _, amount := range samples {
		key := amount.String()
		if seen[key] || amount.LessThan(p.minAmount) || amount.GreaterThan(p.maxAmount) {
			continue
		}
		seen[key] = true
		out = append(out, PricingExample{
			Amount:   amount.InexactFloat64(),
			TokenQty: p.TokensFor(amount),
		})
	}
	return out
}

// Bounds returns the configured purchase limits.
func (p *PricingPolicy) Bounds() (min, max decimal.Decimal) {
	return p.minAmount, p.maxAmount
}

// Rate returns tokens per major currency unit.
func (p *PricingPolicy) Rate() decimal.Decimal {
	return p.rate
}

// Thresholds returns the low and critical balance warning levels.
func (p *PricingPolicy) Thresholds() (low, critical int64) {
	return p.lowBal, p.criticalBal
}

// BalanceStatus classifies a balance against the warning thresholds.
func (p *PricingPolicy) BalanceStatus(balance int64) string {
	switch {
	case balance <= p.criticalBal:
		return "critical"
	case balance <= p.lowBal:
		return "low"
	default:
		return "ok"
	}
}
