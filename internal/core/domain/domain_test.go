package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   PaymentStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusSuccessful, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestUserBalance_Consistent(t *testing.T) {
	b := &UserBalance{Balance: 90, TotalPurchased: 100, TotalConsumed: 10}
	assert.True(t, b.Consistent())

	b.Balance = 95
	assert.False(t, b.Consistent())
}

func TestNewReference_Format(t *testing.T) {
	ref := NewReference("SEN")

	// SEN + 14-digit UTC timestamp + 12 uppercase hex chars
	re := regexp.MustCompile(`^SEN\d{14}[0-9A-F]{12}$`)
	assert.Regexp(t, re, ref)

	ts := ref[3:17]
	parsed, err := time.Parse("20060102150405", ts)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestNewReference_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := NewReference("SEN")
		assert.False(t, seen[ref], "reference collision: %s", ref)
		seen[ref] = true
	}
}

func TestParseServiceKind(t *testing.T) {
	for _, valid := range []string{"analysis", "transform", "premium_insights"} {
		kind, err := ParseServiceKind(valid)
		require.NoError(t, err)
		assert.Equal(t, ServiceKind(valid), kind)
	}

	_, err := ParseServiceKind("mining")
	assert.Error(t, err)
}

func TestPaymentTransaction_IsTerminal(t *testing.T) {
	tx := &PaymentTransaction{
		Reference: NewReference("SEN"),
		UserKey:   "u1",
		Amount:    decimal.NewFromInt(500),
		Currency:  "NGN",
		TokenQty:  1000,
		Status:    StatusPending,
	}
	assert.False(t, tx.IsTerminal())

	tx.Status = StatusSuccessful
	assert.True(t, tx.IsTerminal())
}
