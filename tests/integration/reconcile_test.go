package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisStorage "dataset-billing/internal/adapter/storage/redis"
	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/metrics"
	"dataset-billing/internal/service"
	"dataset-billing/pkg/logger"
)

// creditFailingLedger fails the first n Credit calls and then delegates.
type creditFailingLedger struct {
	ports.LedgerService
	mu    sync.Mutex
	fails int
}

func (l *creditFailingLedger) Credit(ctx context.Context, userKey string, qty int64) (*domain.UserBalance, error) {
	l.mu.Lock()
	if l.fails > 0 {
		l.fails--
		l.mu.Unlock()
		return nil, errors.New("storage unavailable")
	}
	l.mu.Unlock()
	return l.LedgerService.Credit(ctx, userKey, qty)
}

func TestIntegration_ReconcileReplaysFailedCredit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	cfg := testPricingConfig()
	log := logger.New("debug", false)
	balanceRepo := newInMemoryBalanceRepo()
	txRepo := newInMemoryTransactionRepo()
	consumptionRepo := newInMemoryConsumptionRepo()
	gatewayCli := newFakeGateway()

	ledger := &creditFailingLedger{
		LedgerService: service.NewLedgerService(balanceRepo, consumptionRepo, cfg.FreeGrantTokens, log),
		fails:         1,
	}
	paymentSvc := service.NewPaymentOrchestrator(
		service.NewPricingPolicy(cfg), ledger, txRepo, gatewayCli,
		redisStorage.NewVerifyCache(rdb), metrics.New(prometheus.NewRegistry()),
		cfg.ReferencePrefix, cfg.TransactionTTL, log,
	)

	ctx := context.Background()
	result, err := paymentSvc.Purchase(ctx, ports.PurchaseRequest{UserKey: "buyer-r", TokenQty: 500})
	require.NoError(t, err)

	gatewayCli.setStatus(result.Reference, "successful")

	// The first credit attempt fails. The transaction still settles as
	// successful but only the free grant is on the balance.
	out, err := paymentSvc.Verify(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccessful, out.Status)
	assert.Equal(t, int64(25), out.CurrentBalance)

	// The reconciler finds the row and applies the missed credit.
	replayed, err := paymentSvc.ReconcileCredits(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), replayed)

	balance, err := ledger.BalanceOf(ctx, "buyer-r")
	require.NoError(t, err)
	assert.Equal(t, int64(525), balance.Balance)

	// Nothing left to replay.
	replayed, err = paymentSvc.ReconcileCredits(ctx)
	require.NoError(t, err)
	assert.Zero(t, replayed)
}
