package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/core/ports/mocks"
	"dataset-billing/internal/metrics"
	"dataset-billing/pkg/apperror"
)

type paymentTestDeps struct {
	svc         *PaymentOrchestrator
	ledger      *mocks.MockLedgerService
	txRepo      *mocks.MockTransactionRepository
	gatewayCli  *mocks.MockGatewayClient
	verifyCache *mocks.MockVerifyCache
	ctrl        *gomock.Controller
}

func setupPayment(t *testing.T) *paymentTestDeps {
	ctrl := gomock.NewController(t)
	d := &paymentTestDeps{
		ledger:      mocks.NewMockLedgerService(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		gatewayCli:  mocks.NewMockGatewayClient(ctrl),
		verifyCache: mocks.NewMockVerifyCache(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewPaymentOrchestrator(
		NewPricingPolicy(testPricingConfig()),
		d.ledger, d.txRepo, d.gatewayCli, d.verifyCache,
		metrics.New(prometheus.NewRegistry()),
		"SEN", time.Hour, zerolog.Nop(),
	)
	return d
}

func pendingTx(reference string) *domain.PaymentTransaction {
	now := time.Now().UTC()
	return &domain.PaymentTransaction{
		Reference: reference,
		UserKey:   "user-1",
		Amount:    decimal.NewFromInt(500),
		Currency:  "NGN",
		TokenQty:  1000,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ==================== Purchase ====================

func TestPayment_Purchase_Success(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 100}, nil)
	d.txRepo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *domain.PaymentTransaction) error {
			assert.Equal(t, "user-1", tx.UserKey)
			assert.Equal(t, int64(1000), tx.TokenQty)
			assert.True(t, decimal.NewFromInt(500).Equal(tx.Amount))
			assert.Equal(t, domain.StatusPending, tx.Status)
			assert.Regexp(t, `^SEN\d{14}[0-9A-F]{12}$`, tx.Reference)
			return nil
		})
	d.gatewayCli.EXPECT().PaymentURL(gomock.Any()).
		Return("https://checkout.example/pay?txn_ref=x", nil)

	result, err := d.svc.Purchase(ctx, ports.PurchaseRequest{
		UserKey:  "user-1",
		TokenQty: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.TokenQty)
	assert.Equal(t, "NGN", result.Currency)
	assert.NotEmpty(t, result.PaymentURL)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)
}

func TestPayment_Purchase_BelowMinimum(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()

	// 100 tokens = NGN 50, under the NGN 250 floor. No store calls happen.
	_, err := d.svc.Purchase(context.Background(), ports.PurchaseRequest{
		UserKey:  "user-1",
		TokenQty: 100,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ValidationError", appErr.Kind)
}

func TestPayment_Purchase_RejectsForeignCurrency(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()

	// Configured currency is NGN. No store calls happen.
	_, err := d.svc.Purchase(context.Background(), ports.PurchaseRequest{
		UserKey:  "user-1",
		Currency: "USD",
		TokenQty: 1000,
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ValidationError", appErr.Kind)
	assert.Contains(t, appErr.Detail, "USD")
}

func TestPayment_Purchase_DuplicateReference(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1"}, nil)
	d.txRepo.EXPECT().Create(ctx, gomock.Any()).Return(ports.ErrDuplicateReference)

	_, err := d.svc.Purchase(ctx, ports.PurchaseRequest{UserKey: "user-1", TokenQty: 1000})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DuplicateReference", appErr.Kind)
}

// ==================== Verify ====================

func TestPayment_Verify_SuccessCreditsOnce(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := pendingTx("SENref1")

	d.verifyCache.EXPECT().Get(ctx, "SENref1").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref1").Return(tx, nil)
	d.gatewayCli.EXPECT().Verify(ctx, "SENref1", gomock.Any()).
		Return(&ports.VerifyResult{Status: ports.GatewaySuccessful, ResponseCode: "00", Payload: []byte(`{"ResponseCode":"00"}`)}, nil)
	d.txRepo.EXPECT().UpdateStatusFrom(ctx, "SENref1", domain.StatusPending, domain.StatusSuccessful, gomock.Any()).
		Return(true, nil)
	d.txRepo.EXPECT().MarkCredited(ctx, "SENref1").Return(true, nil)
	d.ledger.EXPECT().Credit(ctx, "user-1", int64(1000)).
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 1100}, nil)
	d.verifyCache.EXPECT().Set(ctx, "SENref1", gomock.Any(), verifyCacheTTL).Return(nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 1100}, nil)

	out, err := d.svc.Verify(ctx, "SENref1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccessful, out.Status)
	assert.Equal(t, int64(1000), out.TokenQty)
	assert.Equal(t, int64(1100), out.CurrentBalance)
}

func TestPayment_Verify_CreditFailureRevertsFlag(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := pendingTx("SENrefA")

	d.verifyCache.EXPECT().Get(ctx, "SENrefA").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENrefA").Return(tx, nil)
	d.gatewayCli.EXPECT().Verify(ctx, "SENrefA", gomock.Any()).
		Return(&ports.VerifyResult{Status: ports.GatewaySuccessful, ResponseCode: "00"}, nil)
	d.txRepo.EXPECT().UpdateStatusFrom(ctx, "SENrefA", domain.StatusPending, domain.StatusSuccessful, gomock.Any()).
		Return(true, nil)
	d.txRepo.EXPECT().MarkCredited(ctx, "SENrefA").Return(true, nil)
	d.ledger.EXPECT().Credit(ctx, "user-1", int64(1000)).Return(nil, assert.AnError)
	// The flag must be reverted so ListUncredited sees the row again.
	d.txRepo.EXPECT().UnmarkCredited(ctx, "SENrefA").Return(nil)
	d.verifyCache.EXPECT().Set(ctx, "SENrefA", gomock.Any(), verifyCacheTTL).Return(nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 100}, nil)

	out, err := d.svc.Verify(ctx, "SENrefA")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccessful, out.Status)
	assert.Equal(t, int64(100), out.CurrentBalance)
}

func TestPayment_Verify_ConcurrentLoserSkipsCredit(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := pendingTx("SENref2")

	settled := pendingTx("SENref2")
	settled.Status = domain.StatusSuccessful
	settled.CreditApplied = true

	d.verifyCache.EXPECT().Get(ctx, "SENref2").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref2").Return(tx, nil)
	d.gatewayCli.EXPECT().Verify(ctx, "SENref2", gomock.Any()).
		Return(&ports.VerifyResult{Status: ports.GatewaySuccessful, ResponseCode: "00"}, nil)
	// Lost the conditional update to a concurrent verifier.
	d.txRepo.EXPECT().UpdateStatusFrom(ctx, "SENref2", domain.StatusPending, domain.StatusSuccessful, gomock.Any()).
		Return(false, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref2").Return(settled, nil)
	d.verifyCache.EXPECT().Set(ctx, "SENref2", gomock.Any(), verifyCacheTTL).Return(nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 1100}, nil)

	out, err := d.svc.Verify(ctx, "SENref2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccessful, out.Status)
	// No MarkCredited / Credit expectations: the loser must not credit.
}

func TestPayment_Verify_AlreadySuccessful_Idempotent(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	tx := pendingTx("SENref3")
	tx.Status = domain.StatusSuccessful
	tx.CreditApplied = true

	d.verifyCache.EXPECT().Get(ctx, "SENref3").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref3").Return(tx, nil)
	d.verifyCache.EXPECT().Set(ctx, "SENref3", gomock.Any(), verifyCacheTTL).Return(nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 1100}, nil)

	out, err := d.svc.Verify(ctx, "SENref3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccessful, out.Status)
	assert.Equal(t, int64(1000), out.TokenQty)
	// No gateway call: terminal rows are answered from the store.
}

func TestPayment_Verify_CachedOutcome(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	tx := pendingTx("SENref4")
	tx.Status = domain.StatusSuccessful

	d.verifyCache.EXPECT().Get(ctx, "SENref4").
		Return(&ports.CachedVerify{Status: domain.StatusSuccessful, TokenQty: 1000, Message: "payment verified, 1000 tokens credited"}, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref4").Return(tx, nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 1050}, nil)

	out, err := d.svc.Verify(ctx, "SENref4")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccessful, out.Status)
	assert.Equal(t, int64(1050), out.CurrentBalance, "balance must be fresh, not cached")
}

func TestPayment_Verify_UnknownReference(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.verifyCache.EXPECT().Get(ctx, "SENmissing").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENmissing").Return(nil, nil)

	_, err := d.svc.Verify(ctx, "SENmissing")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UnknownReference", appErr.Kind)
}

func TestPayment_Verify_GatewayPendingLeavesRow(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := pendingTx("SENref5")

	d.verifyCache.EXPECT().Get(ctx, "SENref5").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref5").Return(tx, nil)
	d.gatewayCli.EXPECT().Verify(ctx, "SENref5", gomock.Any()).
		Return(&ports.VerifyResult{Status: ports.GatewayPending, ResponseCode: "09"}, nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 100}, nil)

	out, err := d.svc.Verify(ctx, "SENref5")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, out.Status)
	assert.Zero(t, out.TokenQty)
}

func TestPayment_Verify_GatewayFailedMovesToFailed(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := pendingTx("SENref6")

	d.verifyCache.EXPECT().Get(ctx, "SENref6").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref6").Return(tx, nil)
	d.gatewayCli.EXPECT().Verify(ctx, "SENref6", gomock.Any()).
		Return(&ports.VerifyResult{Status: ports.GatewayFailed, ResponseCode: "Z6", Payload: []byte(`{"ResponseCode":"Z6"}`)}, nil)
	d.txRepo.EXPECT().UpdateStatusFrom(ctx, "SENref6", domain.StatusPending, domain.StatusFailed, gomock.Any()).
		Return(true, nil)
	d.verifyCache.EXPECT().Set(ctx, "SENref6", gomock.Any(), verifyCacheTTL).Return(nil)
	d.ledger.EXPECT().BalanceOf(ctx, "user-1").
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 100}, nil)

	out, err := d.svc.Verify(ctx, "SENref6")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Zero(t, out.TokenQty)
}

func TestPayment_Verify_GatewayUnavailable(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := pendingTx("SENref7")

	d.verifyCache.EXPECT().Get(ctx, "SENref7").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "SENref7").Return(tx, nil)
	d.gatewayCli.EXPECT().Verify(ctx, "SENref7", gomock.Any()).
		Return(nil, assert.AnError)

	_, err := d.svc.Verify(ctx, "SENref7")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "GatewayUnavailable", appErr.Kind)
}

// ==================== Maintenance ====================

func TestPayment_SweepExpired(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.txRepo.EXPECT().CancelExpired(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now().UTC().Add(-time.Hour), cutoff, time.Minute)
			return 2, nil
		})

	n, err := d.svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPayment_ReconcileCredits_ReplaysMissedCredit(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	missed := pendingTx("SENref8")
	missed.Status = domain.StatusSuccessful

	d.txRepo.EXPECT().ListUncredited(ctx, reconcileBatchSize).
		Return([]*domain.PaymentTransaction{missed}, nil)
	d.txRepo.EXPECT().MarkCredited(ctx, "SENref8").Return(true, nil)
	d.ledger.EXPECT().Credit(ctx, "user-1", int64(1000)).
		Return(&domain.UserBalance{UserKey: "user-1", Balance: 1100}, nil)

	n, err := d.svc.ReconcileCredits(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPayment_ReconcileCredits_SkipsAlreadyCredited(t *testing.T) {
	d := setupPayment(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	missed := pendingTx("SENref9")
	missed.Status = domain.StatusSuccessful

	d.txRepo.EXPECT().ListUncredited(ctx, reconcileBatchSize).
		Return([]*domain.PaymentTransaction{missed}, nil)
	// The flag was flipped between listing and replay.
	d.txRepo.EXPECT().MarkCredited(ctx, "SENref9").Return(false, nil)

	n, err := d.svc.ReconcileCredits(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
