package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/metrics"
	"dataset-billing/pkg/apperror"
)

// verifyCacheTTL bounds how long a terminal verification outcome is
// served from cache before falling back to the database.
const verifyCacheTTL = 24 * time.Hour

// reconcileBatchSize caps how many missed credits one reconcile pass replays.
const reconcileBatchSize = 100

// PaymentOrchestrator implements ports.PaymentService. It owns reference
// generation and the pending -> terminal state machine; token credits
// happen only on its single conditional-update success path.
type PaymentOrchestrator struct {
	pricing     *PricingPolicy
	ledger      ports.LedgerService
	txRepo      ports.TransactionRepository
	gatewayCli  ports.GatewayClient
	verifyCache ports.VerifyCache
	metrics     *metrics.Metrics
	refPrefix   string
	txTTL       time.Duration
	log         zerolog.Logger
}

// NewPaymentOrchestrator creates a new PaymentOrchestrator.
func NewPaymentOrchestrator(
	pricing *PricingPolicy,
	ledger ports.LedgerService,
	txRepo ports.TransactionRepository,
	gatewayCli ports.GatewayClient,
	verifyCache ports.VerifyCache,
	m *metrics.Metrics,
	refPrefix string,
	txTTL time.Duration,
	log zerolog.Logger,
) *PaymentOrchestrator {
	return &PaymentOrchestrator{
		pricing:     pricing,
		ledger:      ledger,
		txRepo:      txRepo,
		gatewayCli:  gatewayCli,
		verifyCache: verifyCache,
		metrics:     m,
		refPrefix:   refPrefix,
		txTTL:       txTTL,
		log:         log,
	}
}

// resolvePricing turns the request into a (token_qty, amount) pair and
// validates it against the purchase bounds.
func (s *PaymentOrchestrator) resolvePricing(req ports.PurchaseRequest) (*domain.PaymentTransaction, error) {
	if req.Currency != "" && req.Currency != s.pricing.Currency() {
		return nil, apperror.Validation(fmt.Sprintf("unsupported currency %s, purchases settle in %s", req.Currency, s.pricing.Currency()))
	}

	tx := &domain.PaymentTransaction{
		UserKey:  req.UserKey,
		Currency: s.pricing.Currency(),
		Status:   domain.StatusPending,
	}

	if req.ByAmount {
		tx.Amount = req.Amount
		tx.TokenQty = s.pricing.TokensFor(req.Amount)
		if tx.TokenQty <= 0 {
			return nil, apperror.Validation("amount is too small to buy any tokens")
		}
	} else {
		amount, err := s.pricing.AmountFor(req.TokenQty)
		if err != nil {
			return nil, err
		}
		tx.Amount = amount
		tx.TokenQty = req.TokenQty
	}

	if err := s.pricing.ValidatePurchase(tx.Amount); err != nil {
		return nil, err
	}
	return tx, nil
}

// initiate runs the shared purchase steps: ensure the account exists
// (free grant on first use), generate the reference, and persist the
// pending transaction.
func (s *PaymentOrchestrator) initiate(ctx context.Context, req ports.PurchaseRequest) (*domain.PaymentTransaction, error) {
	if req.UserKey == "" {
		return nil, apperror.Validation("user_key must not be empty")
	}

	tx, err := s.resolvePricing(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.BalanceOf(ctx, req.UserKey); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx.Reference = domain.NewReference(s.refPrefix)
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.txRepo.Create(ctx, tx); err != nil {
		if errors.Is(err, ports.ErrDuplicateReference) {
			return nil, apperror.ErrDuplicateReference(tx.Reference)
		}
		return nil, apperror.ErrStorage(fmt.Errorf("create transaction: %w", err))
	}

	s.metrics.PurchasesInitiated.Inc()
	s.log.Info().
		Str("reference", tx.Reference).
		Str("user_key", tx.UserKey).
		Int64("token_qty", tx.TokenQty).
		Str("amount", tx.Amount.StringFixed(2)).
		Msg("purchase initiated")
	return tx, nil
}

// Purchase starts a token purchase and returns the hosted checkout URL.
// It never blocks on the user completing payment.
func (s *PaymentOrchestrator) Purchase(ctx context.Context, req ports.PurchaseRequest) (*ports.PurchaseResult, error) {
	tx, err := s.initiate(ctx, req)
	if err != nil {
		return nil, err
	}

	paymentURL, err := s.gatewayCli.PaymentURL(ports.CheckoutParams{
		Reference: tx.Reference,
		Amount:    tx.Amount,
		CustEmail: req.CustEmail,
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build payment url: %w", err))
	}

	return &ports.PurchaseResult{
		Reference:  tx.Reference,
		PaymentURL: paymentURL,
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		TokenQty:   tx.TokenQty,
		ExpiresAt:  tx.CreatedAt.Add(s.txTTL),
	}, nil
}

// InlineCheckout starts a purchase for the embedded widget flow and
// returns the widget configuration plus the new reference.
func (s *PaymentOrchestrator) InlineCheckout(ctx context.Context, req ports.PurchaseRequest) (*ports.InlineConfig, string, error) {
	tx, err := s.initiate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	cfg, err := s.gatewayCli.InlineConfig(ports.CheckoutParams{
		Reference: tx.Reference,
		Amount:    tx.Amount,
		CustEmail: req.CustEmail,
	})
	if err != nil {
		return nil, "", apperror.InternalError(fmt.Errorf("build inline config: %w", err))
	}
	return cfg, tx.Reference, nil
}

// Verify settles the outcome of a purchase. It is idempotent on the
// reference: repeated calls after success return the recorded outcome
// without re-crediting.
func (s *PaymentOrchestrator) Verify(ctx context.Context, reference string) (*ports.VerifyOutcome, error) {
	if reference == "" {
		return nil, apperror.Validation("reference must not be empty")
	}

	// Cache fast path; the balance is always read fresh.
	if cached, err := s.verifyCache.Get(ctx, reference); err != nil {
		s.log.Warn().Err(err).Str("reference", reference).Msg("verify cache read failed, falling through")
	} else if cached != nil {
		tx, err := s.txRepo.GetByReference(ctx, reference)
		if err != nil || tx == nil {
			// Cache is advisory; resolve against the database below.
			s.log.Warn().Str("reference", reference).Msg("cached verify without matching transaction")
		} else {
			return s.outcomeFor(ctx, tx, cached.Message)
		}
	}

	tx, err := s.txRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("load transaction: %w", err))
	}
	if tx == nil {
		return nil, apperror.ErrUnknownReference(reference)
	}

	if tx.IsTerminal() {
		return s.settled(ctx, tx)
	}

	start := time.Now()
	result, err := s.gatewayCli.Verify(ctx, reference, tx.Amount)
	s.metrics.GatewayLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		// Network faults and gateway 5xx leave the row pending; the
		// client may retry verify.
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	switch result.Status {
	case ports.GatewaySuccessful:
		return s.settleSuccess(ctx, tx, result.Payload)
	case ports.GatewayPending:
		return s.outcomeFor(ctx, tx, "payment is still pending, try again shortly")
	default:
		return s.settleFailure(ctx, tx, result.Payload)
	}
}

// settleSuccess applies the exactly-once credit discipline: the
// conditional status update elects a single winner, and the
// credit_applied flag guards the credit itself so a replay after a
// crash cannot double-credit.
func (s *PaymentOrchestrator) settleSuccess(ctx context.Context, tx *domain.PaymentTransaction, payload []byte) (*ports.VerifyOutcome, error) {
	won, err := s.txRepo.UpdateStatusFrom(ctx, tx.Reference, domain.StatusPending, domain.StatusSuccessful, payload)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("settle success: %w", err))
	}

	if !won {
		// A concurrent verifier got there first. Re-read and make sure
		// the row actually landed on successful.
		current, err := s.txRepo.GetByReference(ctx, tx.Reference)
		if err != nil {
			return nil, apperror.ErrStorage(fmt.Errorf("reload transaction: %w", err))
		}
		if current == nil || current.Status != domain.StatusSuccessful {
			s.log.Error().
				Str("reference", tx.Reference).
				Msg("conditional update lost to a non-successful terminal state")
			return nil, apperror.ErrConflictingState(tx.Reference, nil)
		}
		return s.settled(ctx, current)
	}

	tx.Status = domain.StatusSuccessful
	s.metrics.VerifyOutcomes.WithLabelValues(string(domain.StatusSuccessful)).Inc()

	if err := s.applyCredit(ctx, tx); err != nil {
		// The transaction is successful with the credit missing; the
		// reconciler will replay it.
		s.log.Error().Err(err).
			Str("reference", tx.Reference).
			Msg("credit failed after status transition, leaving for reconciliation")
	}

	return s.settled(ctx, tx)
}

// applyCredit credits the purchase exactly once via the credit_applied flag.
func (s *PaymentOrchestrator) applyCredit(ctx context.Context, tx *domain.PaymentTransaction) error {
	marked, err := s.txRepo.MarkCredited(ctx, tx.Reference)
	if err != nil {
		return fmt.Errorf("mark credited: %w", err)
	}
	if !marked {
		// Someone already credited this reference.
		return nil
	}

	if _, err := s.ledger.Credit(ctx, tx.UserKey, tx.TokenQty); err != nil {
		// Revert the flag so ListUncredited picks the row up again.
		if revertErr := s.txRepo.UnmarkCredited(ctx, tx.Reference); revertErr != nil {
			s.log.Error().Err(revertErr).
				Str("reference", tx.Reference).
				Msg("credit flag revert failed, credit needs manual repair")
		}
		return fmt.Errorf("credit tokens: %w", err)
	}
	s.metrics.TokensCredited.Add(float64(tx.TokenQty))
	return nil
}

func (s *PaymentOrchestrator) settleFailure(ctx context.Context, tx *domain.PaymentTransaction, payload []byte) (*ports.VerifyOutcome, error) {
	won, err := s.txRepo.UpdateStatusFrom(ctx, tx.Reference, domain.StatusPending, domain.StatusFailed, payload)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("settle failure: %w", err))
	}
	if won {
		tx.Status = domain.StatusFailed
		s.metrics.VerifyOutcomes.WithLabelValues(string(domain.StatusFailed)).Inc()
	} else {
		current, err := s.txRepo.GetByReference(ctx, tx.Reference)
		if err != nil {
			return nil, apperror.ErrStorage(fmt.Errorf("reload transaction: %w", err))
		}
		if current != nil {
			tx = current
		}
	}
	return s.settled(ctx, tx)
}

// settled builds the outcome for a terminal transaction and caches it.
func (s *PaymentOrchestrator) settled(ctx context.Context, tx *domain.PaymentTransaction) (*ports.VerifyOutcome, error) {
	var message string
	switch tx.Status {
	case domain.StatusSuccessful:
		message = fmt.Sprintf("payment verified, %d tokens credited", tx.TokenQty)
	case domain.StatusFailed:
		message = "payment failed at the gateway"
	case domain.StatusCancelled:
		message = "transaction expired and was cancelled"
	default:
		message = "payment is still pending, try again shortly"
	}

	if tx.IsTerminal() {
		cached := &ports.CachedVerify{Status: tx.Status, TokenQty: tx.TokenQty, Message: message}
		if err := s.verifyCache.Set(ctx, tx.Reference, cached, verifyCacheTTL); err != nil {
			s.log.Warn().Err(err).Str("reference", tx.Reference).Msg("verify cache write failed")
		}
	}

	return s.outcomeFor(ctx, tx, message)
}

func (s *PaymentOrchestrator) outcomeFor(ctx context.Context, tx *domain.PaymentTransaction, message string) (*ports.VerifyOutcome, error) {
	balance, err := s.ledger.BalanceOf(ctx, tx.UserKey)
	if err != nil {
		return nil, err
	}

	out := &ports.VerifyOutcome{
		Reference:      tx.Reference,
		Status:         tx.Status,
		CurrentBalance: balance.Balance,
		Message:        message,
	}
	if tx.Status == domain.StatusSuccessful {
		out.TokenQty = tx.TokenQty
	}
	return out, nil
}

// SweepExpired cancels pending transactions older than the configured
// TTL. The conditional update never touches successful rows.
func (s *PaymentOrchestrator) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.txTTL)
	n, err := s.txRepo.CancelExpired(ctx, cutoff)
	if err != nil {
		return 0, apperror.ErrStorage(fmt.Errorf("sweep expired: %w", err))
	}
	if n > 0 {
		s.metrics.SweptTransactions.Add(float64(n))
		s.log.Info().Int64("cancelled", n).Msg("expired pending transactions swept")
	}
	return n, nil
}

// ReconcileCredits replays token credits for successful transactions
// whose credit was lost to a crash or storage fault.
func (s *PaymentOrchestrator) ReconcileCredits(ctx context.Context) (int64, error) {
	pending, err := s.txRepo.ListUncredited(ctx, reconcileBatchSize)
	if err != nil {
		return 0, apperror.ErrStorage(fmt.Errorf("list uncredited: %w", err))
	}

	var replayed int64
	for _, tx := range pending {
		if err := s.applyCredit(ctx, tx); err != nil {
			s.log.Error().Err(err).Str("reference", tx.Reference).Msg("credit replay failed")
			continue
		}
		replayed++
		s.log.Info().
			Str("reference", tx.Reference).
			Str("user_key", tx.UserKey).
			Int64("token_qty", tx.TokenQty).
			Msg("missed credit replayed")
	}
	return replayed, nil
}
