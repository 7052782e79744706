package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-billing/config"
	"dataset-billing/internal/core/domain"
)

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		Currency:              "NGN",
		CurrencyNumericCode:   "566",
		TokensPerUnitMoney:    2.0,
		MinPurchaseMoney:      250,
		MaxPurchaseMoney:      100000,
		FreeGrantTokens:       100,
		LowBalanceTokens:      20,
		CriticalBalanceTokens: 5,
		StrictPricing:         true,
		AnalysisCost:          10,
		TransformCost:         5,
		PremiumInsightsCost:   20,
	}
}

func TestPricingPolicy_TokensFor(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	tests := []struct {
		amount float64
		want   int64
	}{
		{250, 500},
		{500, 1000},
		{250.50, 501},
		{250.25, 500}, // 500.5 floors to 500
		{0.25, 0},
	}

	for _, tt := range tests {
		got := p.TokensFor(decimal.NewFromFloat(tt.amount))
		assert.Equal(t, tt.want, got, "amount %v", tt.amount)
	}
}

func TestPricingPolicy_AmountFor_RoundTrip(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	amount, err := p.AmountFor(1000)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(amount))
	assert.Equal(t, int64(1000), p.TokensFor(amount))
}

func TestPricingPolicy_AmountFor_StrictRejectsUneven(t *testing.T) {
	cfg := testPricingConfig()
	cfg.TokensPerUnitMoney = 3.0
	p := NewPricingPolicy(cfg)

	// 1000 / 3 = 333.33; 333.33 * 3 = 999.99 -> floors to 999, not 1000.
	_, err := p.AmountFor(1000)
	require.Error(t, err)

	// 999 / 3 = 333.00 exactly.
	amount, err := p.AmountFor(999)
	require.NoError(t, err)
	assert.Equal(t, int64(999), p.TokensFor(amount))
}

func TestPricingPolicy_AmountFor_RejectsNonPositive(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	_, err := p.AmountFor(0)
	assert.Error(t, err)
	_, err = p.AmountFor(-5)
	assert.Error(t, err)
}

func TestPricingPolicy_CostOf(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	cost, err := p.CostOf(domain.ServiceAnalysis)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cost)

	cost, err = p.CostOf(domain.ServiceTransform)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cost)

	cost, err = p.CostOf(domain.ServicePremiumInsights)
	require.NoError(t, err)
	assert.Equal(t, int64(20), cost)

	_, err = p.CostOf(domain.ServiceKind("mining"))
	assert.Error(t, err)
}

func TestPricingPolicy_ValidatePurchase_Bounds(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	assert.Error(t, p.ValidatePurchase(decimal.NewFromInt(249)))
	assert.NoError(t, p.ValidatePurchase(decimal.NewFromInt(250)))
	assert.NoError(t, p.ValidatePurchase(decimal.NewFromInt(100000)))
	assert.Error(t, p.ValidatePurchase(decimal.NewFromInt(100001)))
}

func TestPricingPolicy_BalanceStatus(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	assert.Equal(t, "ok", p.BalanceStatus(100))
	assert.Equal(t, "ok", p.BalanceStatus(21))
	assert.Equal(t, "low", p.BalanceStatus(20))
	assert.Equal(t, "low", p.BalanceStatus(6))
	assert.Equal(t, "critical", p.BalanceStatus(5))
	assert.Equal(t, "critical", p.BalanceStatus(0))
}

func TestPricingPolicy_Examples(t *testing.T) {
	p := NewPricingPolicy(testPricingConfig())

	examples := p.Examples()
	require.NotEmpty(t, examples)
	for _, ex := range examples {
		assert.GreaterOrEqual(t, ex.Amount, 250.0)
		assert.LessOrEqual(t, ex.Amount, 100000.0)
		assert.Positive(t, ex.TokenQty)
	}
}
