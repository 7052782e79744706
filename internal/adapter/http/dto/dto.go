package dto

// PurchaseRequest starts a token purchase. Exactly one of token_qty or
// amount must be set.
type PurchaseRequest struct {
	UserKey   string  `json:"user_key" binding:"required,max=128,user_key"`
	TokenQty  int64   `json:"token_qty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency" binding:"required"`
	CustEmail string  `json:"cust_email"`
}

// PurchaseResponse is the initiated, still-pending purchase.
type PurchaseResponse struct {
	Reference  string  `json:"reference"`
	TokenQty   int64   `json:"token_qty"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	PaymentURL string  `json:"payment_url"`
	Status     string  `json:"status"`
	ExpiresAt  string  `json:"expires_at"`
}

// VerifyResponse reports the settled outcome of a purchase.
type VerifyResponse struct {
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	TokensCredited *int64 `json:"tokens_credited,omitempty"`
	CurrentBalance int64  `json:"current_balance"`
	Message        string `json:"message"`
}

// PricingResponse is the public pricing sheet.
type PricingResponse struct {
	Currency              string           `json:"currency"`
	TokensPerUnitMoney    float64          `json:"tokens_per_unit_money"`
	MinPurchaseMoney      float64          `json:"min_purchase_money"`
	MaxPurchaseMoney      float64          `json:"max_purchase_money"`
	LowBalanceTokens      int64            `json:"low_balance_tokens"`
	CriticalBalanceTokens int64            `json:"critical_balance_tokens"`
	ServiceCosts          map[string]int64 `json:"service_costs"`
	Examples              []PricingExample `json:"examples"`
}

// PricingExample pairs a sample amount with the tokens it buys.
type PricingExample struct {
	Amount   float64 `json:"amount"`
	TokenQty int64   `json:"token_qty"`
}

// HistoryResponse lists recent consumption entries for one user.
type HistoryResponse struct {
	UserKey      string             `json:"user_key"`
	History      []ConsumptionEntry `json:"history"`
	TotalRecords int                `json:"total_records"`
}

// ConsumptionEntry is one usage record in the history listing.
type ConsumptionEntry struct {
	ID             string  `json:"id"`
	TokensConsumed int64   `json:"tokens_consumed"`
	ServiceKind    string  `json:"service_kind"`
	WorkItemID     *string `json:"work_item_id,omitempty"`
	Description    *string `json:"description,omitempty"`
	ConsumedAt     string  `json:"consumed_at"`
}

// TransactionResponse is the public shape of one purchase attempt.
type TransactionResponse struct {
	Reference   string  `json:"reference"`
	UserKey     string  `json:"user_key"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	TokenQty    int64   `json:"token_qty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// AnalyzeResponse reports a completed, paid analysis run.
type AnalyzeResponse struct {
	WorkItemID       string `json:"work_item_id"`
	TokensConsumed   int64  `json:"tokens_consumed"`
	RemainingBalance int64  `json:"remaining_balance"`
	Report           any    `json:"report"`
}
