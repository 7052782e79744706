package domain

import "time"

// UserBalance is the token account for one user key. The user key is an
// opaque identifier supplied by the caller; this system performs no
// authentication of its own.
//
// Invariant: Balance = TotalPurchased - TotalConsumed at every quiescent
// point. The free first-use grant is counted into TotalPurchased.
type UserBalance struct {
	UserKey        string     `json:"user_key"`
	Balance        int64      `json:"balance"`
	TotalPurchased int64      `json:"total_purchased"`
	TotalConsumed  int64      `json:"total_consumed"`
	LastPurchaseAt *time.Time `json:"last_purchase_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Consistent reports whether the balance equation holds.
func (b *UserBalance) Consistent() bool {
	return b.Balance == b.TotalPurchased-b.TotalConsumed
}
