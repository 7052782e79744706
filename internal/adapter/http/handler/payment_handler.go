package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dataset-billing/internal/adapter/http/dto"
	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/service"
	"dataset-billing/pkg/apperror"
	"dataset-billing/pkg/response"
)

// PaymentHandler handles purchase, verification, and balance endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	ledgerSvc  ports.LedgerService
	pricing    *service.PricingPolicy
	txRepo     ports.TransactionRepository
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService, ledgerSvc ports.LedgerService, pricing *service.PricingPolicy, txRepo ports.TransactionRepository) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
		ledgerSvc:  ledgerSvc,
		pricing:    pricing,
		txRepo:     txRepo,
	}
}

// GetPricing handles GET /api/v1/payment/pricing.
func (h *PaymentHandler) GetPricing(c *gin.Context) {
	min, max := h.pricing.Bounds()

	costs := make(map[string]int64)
	for kind, cost := range h.pricing.ServiceCosts() {
		costs[string(kind)] = cost
	}

	examples := make([]dto.PricingExample, 0)
	for _, ex := range h.pricing.Examples() {
		examples = append(examples, dto.PricingExample{Amount: ex.Amount, TokenQty: ex.TokenQty})
	}

	low, critical := h.pricing.Thresholds()
	response.OK(c, dto.PricingResponse{
		Currency:              h.pricing.Currency(),
		TokensPerUnitMoney:    h.pricing.Rate().InexactFloat64(),
		MinPurchaseMoney:      min.InexactFloat64(),
		MaxPurchaseMoney:      max.InexactFloat64(),
		LowBalanceTokens:      low,
		CriticalBalanceTokens: critical,
		ServiceCosts:          costs,
		Examples:              examples,
	})
}

// Purchase handles POST /api/v1/payment/purchase.
func (h *PaymentHandler) Purchase(c *gin.Context) {
	req, err := bindPurchase(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.paymentSvc.Purchase(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.PurchaseResponse{
		Reference:  result.Reference,
		TokenQty:   result.TokenQty,
		Amount:     result.Amount.InexactFloat64(),
		Currency:   result.Currency,
		PaymentURL: result.PaymentURL,
		Status:     string(domain.StatusPending),
		ExpiresAt:  result.ExpiresAt.Format(time.RFC3339),
	})
}

// InlineConfig handles POST /api/v1/payment/inline-config. Same input as
// Purchase but returns the embedded-widget configuration instead of a
// redirect URL.
func (h *PaymentHandler) InlineConfig(c *gin.Context) {
	req, err := bindPurchase(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	cfg, reference, err := h.paymentSvc.InlineCheckout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"reference":     reference,
		"inline_config": cfg,
	})
}

// Verify handles POST /api/v1/payment/verify/:reference.
func (h *PaymentHandler) Verify(c *gin.Context) {
	reference := c.Param("reference")
	if !dto.ValidReference(reference) {
		response.Error(c, apperror.Validation("malformed transaction reference"))
		return
	}

	outcome, err := h.paymentSvc.Verify(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.VerifyResponse{
		Reference:      outcome.Reference,
		Status:         string(outcome.Status),
		CurrentBalance: outcome.CurrentBalance,
		Message:        outcome.Message,
	}
	if outcome.Status == domain.StatusSuccessful {
		credited := outcome.TokenQty
		resp.TokensCredited = &credited
	}
	response.OK(c, resp)
}

// GetBalance handles GET /api/v1/payment/balance/:user_key.
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	userKey := c.Param("user_key")
	if !dto.ValidUserKey(userKey) {
		response.Error(c, apperror.Validation("invalid user key"))
		return
	}

	balance, err := h.ledgerSvc.BalanceOf(c.Request.Context(), userKey)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"user_key":        balance.UserKey,
		"balance":         balance.Balance,
		"balance_status":  h.pricing.BalanceStatus(balance.Balance),
		"total_purchased": balance.TotalPurchased,
		"total_consumed":  balance.TotalConsumed,
	})
}

// GetHistory handles GET /api/v1/payment/balance/:user_key/history.
func (h *PaymentHandler) GetHistory(c *gin.Context) {
	userKey := c.Param("user_key")
	if !dto.ValidUserKey(userKey) {
		response.Error(c, apperror.Validation("invalid user key"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.ledgerSvc.History(c.Request.Context(), userKey, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	history := make([]dto.ConsumptionEntry, 0, len(entries))
	for _, e := range entries {
		history = append(history, dto.ConsumptionEntry{
			ID:             e.ID.String(),
			TokensConsumed: e.TokenQty,
			ServiceKind:    string(e.ServiceKind),
			WorkItemID:     e.WorkItemID,
			Description:    e.Description,
			ConsumedAt:     e.ConsumedAt.Format(time.RFC3339),
		})
	}

	response.OK(c, dto.HistoryResponse{
		UserKey:      userKey,
		History:      history,
		TotalRecords: len(history),
	})
}

// GetTransaction handles GET /api/v1/payment/transaction/:reference.
// Reads the stored record without contacting the gateway.
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	reference := c.Param("reference")
	if !dto.ValidReference(reference) {
		response.Error(c, apperror.Validation("malformed transaction reference"))
		return
	}

	tx, err := h.txRepo.GetByReference(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, apperror.ErrStorage(err))
		return
	}
	if tx == nil {
		response.Error(c, apperror.ErrUnknownReference(reference))
		return
	}

	response.OK(c, toTransactionResponse(tx))
}

// bindPurchase validates the shared purchase request body. Exactly one of
// token_qty and amount must be set.
func bindPurchase(c *gin.Context) (ports.PurchaseRequest, error) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ports.PurchaseRequest{}, apperror.Validation(err.Error())
	}

	byQty := req.TokenQty != 0
	byAmount := req.Amount != 0
	if byQty == byAmount {
		return ports.PurchaseRequest{}, apperror.Validation("exactly one of token_qty and amount must be set")
	}
	if byQty && req.TokenQty < 0 {
		return ports.PurchaseRequest{}, apperror.Validation("token_qty must be positive")
	}
	if byAmount && req.Amount < 0 {
		return ports.PurchaseRequest{}, apperror.Validation("amount must be positive")
	}

	return ports.PurchaseRequest{
		UserKey:   req.UserKey,
		Currency:  req.Currency,
		TokenQty:  req.TokenQty,
		Amount:    decimal.NewFromFloat(req.Amount),
		ByAmount:  byAmount,
		CustEmail: req.CustEmail,
	}, nil
}

// toTransactionResponse converts a domain transaction to its DTO.
func toTransactionResponse(tx *domain.PaymentTransaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		Reference: tx.Reference,
		UserKey:   tx.UserKey,
		Amount:    tx.Amount.InexactFloat64(),
		Currency:  tx.Currency,
		TokenQty:  tx.TokenQty,
		Status:    string(tx.Status),
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CompletedAt != nil {
		s := tx.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}
