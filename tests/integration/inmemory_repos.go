package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
)

// In-memory repository implementations with the same atomicity contracts
// as the PostgreSQL ones: conditional insert for the grant, conditional
// update for debits and status transitions. The mutex stands in for the
// row-level atomicity the real queries get from the database.

// --- Balance repo ---

type inMemoryBalanceRepo struct {
	mu       sync.Mutex
	balances map[string]*domain.UserBalance
}

func newInMemoryBalanceRepo() *inMemoryBalanceRepo {
	return &inMemoryBalanceRepo{balances: make(map[string]*domain.UserBalance)}
}

func (r *inMemoryBalanceRepo) EnsureWithGrant(ctx context.Context, userKey string, grantTokens int64) (*domain.UserBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.balances[userKey]; ok {
		return copyBalance(b), nil
	}
	now := time.Now()
	b := &domain.UserBalance{
		UserKey:        userKey,
		Balance:        grantTokens,
		TotalPurchased: grantTokens,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.balances[userKey] = b
	return copyBalance(b), nil
}

func (r *inMemoryBalanceRepo) Get(ctx context.Context, userKey string) (*domain.UserBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[userKey]
	if !ok {
		return nil, nil
	}
	return copyBalance(b), nil
}

func (r *inMemoryBalanceRepo) Credit(ctx context.Context, userKey string, qty int64) (*domain.UserBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[userKey]
	if !ok {
		return nil, fmt.Errorf("balance not found for %s", userKey)
	}
	now := time.Now()
	b.Balance += qty
	b.TotalPurchased += qty
	b.LastPurchaseAt = &now
	b.UpdatedAt = now
	return copyBalance(b), nil
}

func (r *inMemoryBalanceRepo) Debit(ctx context.Context, userKey string, qty int64) (ports.DebitOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[userKey]
	if !ok {
		return ports.DebitOutcome{}, nil
	}
	if b.Balance < qty {
		return ports.DebitOutcome{OK: false, Balance: b.Balance}, nil
	}
	b.Balance -= qty
	b.TotalConsumed += qty
	b.UpdatedAt = time.Now()
	return ports.DebitOutcome{OK: true, Balance: b.Balance}, nil
}

func copyBalance(b *domain.UserBalance) *domain.UserBalance {
	c := *b
	return &c
}

// --- Transaction repo ---

type inMemoryTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*domain.PaymentTransaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[string]*domain.PaymentTransaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[tx.Reference]; ok {
		return ports.ErrDuplicateReference
	}
	c := *tx
	r.transactions[tx.Reference] = &c
	return nil
}

func (r *inMemoryTransactionRepo) GetByReference(ctx context.Context, reference string) (*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[reference]
	if !ok {
		return nil, nil
	}
	c := *tx
	return &c, nil
}

func (r *inMemoryTransactionRepo) UpdateStatusFrom(ctx context.Context, reference string, from, to domain.PaymentStatus, payload []byte) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[reference]
	if !ok || tx.Status != from {
		return false, nil
	}
	tx.Status = to
	if payload != nil {
		tx.GatewayPayload = payload
	}
	now := time.Now()
	if to.IsTerminal() {
		tx.CompletedAt = &now
	}
	tx.UpdatedAt = now
	return true, nil
}

func (r *inMemoryTransactionRepo) MarkCredited(ctx context.Context, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[reference]
	if !ok || tx.CreditApplied {
		return false, nil
	}
	tx.CreditApplied = true
	tx.UpdatedAt = time.Now()
	return true, nil
}

func (r *inMemoryTransactionRepo) UnmarkCredited(ctx context.Context, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[reference]
	if !ok {
		return fmt.Errorf("transaction not found for %s", reference)
	}
	tx.CreditApplied = false
	tx.UpdatedAt = time.Now()
	return nil
}

func (r *inMemoryTransactionRepo) CancelExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for _, tx := range r.transactions {
		if tx.Status == domain.StatusPending && tx.CreatedAt.Before(cutoff) {
			tx.Status = domain.StatusCancelled
			tx.CompletedAt = &now
			tx.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (r *inMemoryTransactionRepo) ListUncredited(ctx context.Context, limit int) ([]*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.PaymentTransaction
	for _, tx := range r.transactions {
		if tx.Status == domain.StatusSuccessful && !tx.CreditApplied {
			c := *tx
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Consumption repo ---

type inMemoryConsumptionRepo struct {
	mu      sync.Mutex
	entries []*domain.ConsumptionEntry
}

func newInMemoryConsumptionRepo() *inMemoryConsumptionRepo {
	return &inMemoryConsumptionRepo{}
}

func (r *inMemoryConsumptionRepo) Append(ctx context.Context, entry *domain.ConsumptionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *entry
	r.entries = append(r.entries, &c)
	return nil
}

func (r *inMemoryConsumptionRepo) ListByUser(ctx context.Context, userKey string, limit int) ([]*domain.ConsumptionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ConsumptionEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].UserKey == userKey {
			c := *r.entries[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

// --- Fake gateway ---

// fakeGateway is a scriptable ports.GatewayClient. Tests set the status
// per reference; unset references verify as pending.
type fakeGateway struct {
	mu          sync.Mutex
	statuses    map[string]ports.GatewayStatus
	verifyCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{statuses: make(map[string]ports.GatewayStatus)}
}

func (g *fakeGateway) setStatus(reference string, status ports.GatewayStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[reference] = status
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verifyCalls
}

func (g *fakeGateway) PaymentURL(params ports.CheckoutParams) (string, error) {
	return "https://gateway.test/pay?txn_ref=" + params.Reference, nil
}

func (g *fakeGateway) InlineConfig(params ports.CheckoutParams) (*ports.InlineConfig, error) {
	return &ports.InlineConfig{
		MerchantCode: "MX000",
		PayItemID:    "item-1",
		TxnRef:       params.Reference,
		AmountMinor:  params.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		CurrencyCode: "566",
		SiteRedirect: params.RedirectURL,
		Hash:         "testhash",
		Mode:         "TEST",
	}, nil
}

func (g *fakeGateway) Verify(ctx context.Context, reference string, expectedAmount decimal.Decimal) (*ports.VerifyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	status, ok := g.statuses[reference]
	if !ok {
		status = ports.GatewayPending
	}
	code := "09"
	if status == ports.GatewaySuccessful {
		code = "00"
	} else if status == ports.GatewayFailed {
		code = "Z6"
	}
	return &ports.VerifyResult{
		Status:       status,
		ResponseCode: code,
		Payload:      []byte(fmt.Sprintf(`{"ResponseCode":%q}`, code)),
	}, nil
}
