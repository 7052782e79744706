package domain

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a purchase attempt.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "pending"
	StatusSuccessful PaymentStatus = "successful"
	StatusFailed     PaymentStatus = "failed"
	StatusCancelled  PaymentStatus = "cancelled"
)

// IsTerminal returns true if the status is a final state.
func (s PaymentStatus) IsTerminal() bool {
	return s == StatusSuccessful || s == StatusFailed || s == StatusCancelled
}

// PaymentTransaction records one purchase attempt. The reference is the
// idempotency key for verification and crediting.
type PaymentTransaction struct {
	Reference      string          `json:"reference"`
	UserKey        string          `json:"user_key"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	TokenQty       int64           `json:"token_qty"`
	Status         PaymentStatus   `json:"status"`
	GatewayPayload json.RawMessage `json:"-"` // opaque; may contain masked card data, never logged
	CreditApplied  bool            `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// IsTerminal returns true if the transaction reached a final state.
func (t *PaymentTransaction) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// NewReference generates a unique transaction reference: a configured prefix,
// a UTC second-resolution timestamp, and 48 bits of random hex. Only the
// payment orchestrator's purchase path may call this.
func NewReference(prefix string) string {
	ts := time.Now().UTC().Format("20060102150405")

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return prefix + ts + strings.ToUpper(hex.EncodeToString(suffix))
}
