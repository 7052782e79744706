package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dataset-billing/internal/core/domain"
)

// GatewayStatus is the normalized outcome of a gateway verification call.
type GatewayStatus string

const (
	GatewaySuccessful GatewayStatus = "successful"
	GatewayPending    GatewayStatus = "pending"
	GatewayFailed     GatewayStatus = "failed"
)

// VerifyResult carries the normalized status plus the raw gateway
// response for audit storage.
type VerifyResult struct {
	Status       GatewayStatus
	ResponseCode string
	Payload      []byte
}

// CheckoutParams is everything the hosted payment page needs.
type CheckoutParams struct {
	Reference   string
	Amount      decimal.Decimal
	CustEmail   string
	RedirectURL string
}

// InlineConfig is the client-side widget configuration for an inline
// (embedded) checkout, hash included.
type InlineConfig struct {
	MerchantCode string `json:"merchant_code"`
	PayItemID    string `json:"pay_item_id"`
	TxnRef       string `json:"txn_ref"`
	AmountMinor  int64  `json:"amount"`
	CurrencyCode string `json:"currency"`
	SiteRedirect string `json:"site_redirect_url"`
	Hash         string `json:"hash"`
	Mode         string `json:"mode"`
}

// GatewayClient talks to the external payment provider. Implementations
// must be safe for concurrent use.
type GatewayClient interface {
	// PaymentURL builds the hosted checkout redirect URL, including the
	// request signature.
	PaymentURL(params CheckoutParams) (string, error)

	// InlineConfig builds the embedded-widget configuration for the same
	// checkout parameters.
	InlineConfig(params CheckoutParams) (*InlineConfig, error)

	// Verify queries the provider for the authoritative status of a
	// transaction. expectedAmount guards against tampered amounts: a
	// provider-successful result with a mismatched amount is downgraded
	// to failed.
	Verify(ctx context.Context, reference string, expectedAmount decimal.Decimal) (*VerifyResult, error)
}

// VerifyCache short-circuits repeated verification of terminal
// references without touching the gateway or the database.
type VerifyCache interface {
	Get(ctx context.Context, reference string) (*CachedVerify, error)
	Set(ctx context.Context, reference string, v *CachedVerify, ttl time.Duration) error
}

// CachedVerify is the cacheable slice of a verification outcome. The
// current balance is never cached; it is read fresh on every request.
type CachedVerify struct {
	Status   domain.PaymentStatus `json:"status"`
	TokenQty int64                `json:"token_qty"`
	Message  string               `json:"message"`
}

// PurchaseRequest is a validated request to start a token purchase.
// Exactly one of TokenQty or Amount is set.
type PurchaseRequest struct {
	UserKey string
	// Currency must match the configured settlement currency when set.
	Currency  string
	TokenQty  int64
	Amount    decimal.Decimal
	ByAmount  bool
	CustEmail string
}

// PurchaseResult is the initiated, still-pending purchase.
type PurchaseResult struct {
	Reference   string
	PaymentURL  string
	Amount      decimal.Decimal
	Currency    string
	TokenQty    int64
	ExpiresAt   time.Time
}

// VerifyOutcome is the settled answer to "did this purchase go through".
type VerifyOutcome struct {
	Reference      string
	Status         domain.PaymentStatus
	TokenQty       int64
	CurrentBalance int64
	Message        string
}

// PaymentService orchestrates the purchase lifecycle.
type PaymentService interface {
	Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error)
	Verify(ctx context.Context, reference string) (*VerifyOutcome, error)
	InlineCheckout(ctx context.Context, req PurchaseRequest) (*InlineConfig, string, error)

	// SweepExpired cancels pending transactions older than the
	// configured TTL. Returns the number cancelled.
	SweepExpired(ctx context.Context) (int64, error)

	// ReconcileCredits replays token credits for successful transactions
	// that crashed between status update and credit.
	ReconcileCredits(ctx context.Context) (int64, error)
}

// LedgerService owns balance reads and the free first-use grant.
type LedgerService interface {
	// BalanceOf returns the balance for userKey, creating the account
	// with the free grant on first sight.
	BalanceOf(ctx context.Context, userKey string) (*domain.UserBalance, error)

	// Credit applies a purchase credit to an existing account.
	Credit(ctx context.Context, userKey string, qty int64) (*domain.UserBalance, error)

	// Debit attempts an atomic conditional debit.
	Debit(ctx context.Context, userKey string, qty int64) (DebitOutcome, error)

	// History returns the most recent consumption entries for userKey.
	History(ctx context.Context, userKey string, limit int) ([]*domain.ConsumptionEntry, error)
}

// UsageInfo describes a priced service and whether the user can afford it.
type UsageInfo struct {
	ServiceKind    domain.ServiceKind `json:"service_kind"`
	TokenCost      int64              `json:"token_cost"`
	CurrentBalance int64              `json:"current_balance"`
	CanAfford      bool               `json:"can_afford"`
}

// ConsumeReceipt reports a completed paid operation.
type ConsumeReceipt struct {
	TokensConsumed   int64 `json:"tokens_consumed"`
	RemainingBalance int64 `json:"remaining_balance"`
}

// ConsumptionGuard gates priced work behind a token debit.
type ConsumptionGuard interface {
	// Consume debits the cost of kind for userKey, runs work, and
	// appends a usage entry when work succeeds. An insufficient balance
	// fails before work is invoked and leaves the balance untouched.
	// A failure of work does not reverse the debit.
	Consume(ctx context.Context, userKey string, kind domain.ServiceKind, workItemID *string, work func(context.Context) error) (*ConsumeReceipt, error)

	// Quote reports the cost of kind against userKey's current balance
	// without debiting.
	Quote(ctx context.Context, userKey string, kind domain.ServiceKind) (*UsageInfo, error)
}

// PIIFinding is one detected instance of personal data in a dataset.
type PIIFinding struct {
	Column  string `json:"column"`
	Kind    string `json:"kind"`
	Matches int    `json:"matches"`
}

// AnalysisReport is the output of one dataset analysis run.
type AnalysisReport struct {
	WorkItemID    string           `json:"work_item_id"`
	Rows          int              `json:"rows"`
	Columns       []string         `json:"columns"`
	MissingValues map[string]int   `json:"missing_values"`
	Outliers      map[string][]int `json:"outliers,omitempty"`
	PIIFindings   []PIIFinding     `json:"pii_findings,omitempty"`
}

// AnalysisEngine runs the actual dataset work after the token debit.
type AnalysisEngine interface {
	Analyze(ctx context.Context, workItemID string) (*AnalysisReport, error)
}
