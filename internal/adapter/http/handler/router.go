package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dataset-billing/internal/adapter/http/middleware"
	redisStore "dataset-billing/internal/adapter/storage/redis"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/service"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PaymentSvc     ports.PaymentService
	LedgerSvc      ports.LedgerService
	Guard          ports.ConsumptionGuard
	Engine         ports.AnalysisEngine
	Pricing        *service.PricingPolicy
	TxRepo         ports.TransactionRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	MetricsHandler http.Handler               // nil = metrics endpoint disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.LedgerSvc, deps.Pricing, deps.TxRepo)
	payment := v1.Group("/payment")
	{
		payment.GET("/pricing", paymentHandler.GetPricing)
		payment.POST("/purchase", rl("purchase"), paymentHandler.Purchase)
		payment.POST("/inline-config", rl("purchase"), paymentHandler.InlineConfig)
		payment.POST("/verify/:reference", rl("verify"), paymentHandler.Verify)
		payment.GET("/balance/:user_key", rl("balance"), paymentHandler.GetBalance)
		payment.GET("/balance/:user_key/history", rl("balance"), paymentHandler.GetHistory)
		payment.GET("/transaction/:reference", rl("balance"), paymentHandler.GetTransaction)
	}

	analyzeHandler := NewAnalyzeHandler(deps.Guard, deps.Engine)
	analyze := v1.Group("/analyze")
	{
		analyze.GET("/quote", rl("balance"), analyzeHandler.Quote)
		analyze.POST("/:work_item_id", rl("analyze"), analyzeHandler.Analyze)
	}

	return r
}
