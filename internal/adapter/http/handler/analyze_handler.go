package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"dataset-billing/internal/adapter/http/dto"
	"dataset-billing/internal/adapter/http/middleware"
	"dataset-billing/internal/core/domain"
	"dataset-billing/internal/core/ports"
	"dataset-billing/pkg/apperror"
	"dataset-billing/pkg/response"
)

// AnalyzeHandler exposes the token-gated dataset analysis endpoints.
type AnalyzeHandler struct {
	guard  ports.ConsumptionGuard
	engine ports.AnalysisEngine
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(guard ports.ConsumptionGuard, engine ports.AnalysisEngine) *AnalyzeHandler {
	return &AnalyzeHandler{guard: guard, engine: engine}
}

// Analyze handles POST /api/v1/analyze/:work_item_id. The caller identity
// comes from the user-key header. Tokens are debited before the analysis
// runs; an insufficient balance returns 402 and leaves the balance alone.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	userKey := c.GetHeader(middleware.HeaderUserKey)
	if !dto.ValidUserKey(userKey) {
		response.Error(c, apperror.Validation("missing or invalid user-key header"))
		return
	}

	workItemID := c.Param("work_item_id")
	if workItemID == "" {
		response.Error(c, apperror.Validation("work_item_id is required"))
		return
	}

	var report *ports.AnalysisReport
	receipt, err := h.guard.Consume(c.Request.Context(), userKey, domain.ServiceAnalysis, &workItemID,
		func(ctx context.Context) error {
			var runErr error
			report, runErr = h.engine.Analyze(ctx, workItemID)
			return runErr
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AnalyzeResponse{
		WorkItemID:       workItemID,
		TokensConsumed:   receipt.TokensConsumed,
		RemainingBalance: receipt.RemainingBalance,
		Report:           report,
	})
}

// Quote handles GET /api/v1/analyze/quote. Reports the analysis cost
// against the caller's current balance without debiting.
func (h *AnalyzeHandler) Quote(c *gin.Context) {
	userKey := c.GetHeader(middleware.HeaderUserKey)
	if !dto.ValidUserKey(userKey) {
		response.Error(c, apperror.Validation("missing or invalid user-key header"))
		return
	}

	info, err := h.guard.Quote(c.Request.Context(), userKey, domain.ServiceAnalysis)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}
