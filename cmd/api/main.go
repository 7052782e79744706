package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"dataset-billing/config"
	"dataset-billing/internal/adapter/gateway"
	httpHandler "dataset-billing/internal/adapter/http/handler"
	pgStorage "dataset-billing/internal/adapter/storage/postgres"
	redisStorage "dataset-billing/internal/adapter/storage/redis"
	"dataset-billing/internal/analysis"
	"dataset-billing/internal/core/ports"
	"dataset-billing/internal/metrics"
	"dataset-billing/internal/service"
	"dataset-billing/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Dataset Billing Service")

	ctx := context.Background()

	// Run database migrations
	if err := pgStorage.RunMigrations(cfg.Database, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	balanceRepo := pgStorage.NewBalanceRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	consumptionRepo := pgStorage.NewConsumptionRepo(pool)

	// Initialize Redis stores
	verifyCache := redisStorage.NewVerifyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize gateway client
	gatewayCli := gateway.NewClient(cfg.Gateway, cfg.Pricing.CurrencyNumericCode, log)

	// Initialize business services
	pricing := service.NewPricingPolicy(cfg.Pricing)
	ledgerSvc := service.NewLedgerService(balanceRepo, consumptionRepo, cfg.Pricing.FreeGrantTokens, log)
	paymentSvc := service.NewPaymentOrchestrator(
		pricing,
		ledgerSvc,
		txRepo,
		gatewayCli,
		verifyCache,
		m,
		cfg.Pricing.ReferencePrefix,
		cfg.Pricing.TransactionTTL,
		log,
	)
	guard := service.NewConsumptionGuard(pricing, ledgerSvc, consumptionRepo, m, log)
	engine := analysis.NewEngine(cfg.Analysis.DataDir, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     paymentSvc,
		LedgerSvc:      ledgerSvc,
		Guard:          guard,
		Engine:         engine,
		Pricing:        pricing,
		TxRepo:         txRepo,
		RateLimitStore: rateLimitStore,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// Background maintenance: TTL sweeper and credit reconciler
	maintCtx, stopMaint := context.WithCancel(ctx)
	defer stopMaint()
	go runSweeper(maintCtx, paymentSvc, cfg.Pricing.TransactionTTL, log)
	go runReconciler(maintCtx, paymentSvc, log)

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stopMaint()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// runSweeper periodically cancels pending transactions past their TTL.
// The interval is a quarter of the TTL, clamped to [1m, 15m].
func runSweeper(ctx context.Context, svc ports.PaymentService, ttl time.Duration, log zerolog.Logger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	if interval > 15*time.Minute {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.SweepExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("sweep of expired transactions failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("cancelled", n).Msg("swept expired transactions")
			}
		}
	}
}

// runReconciler periodically replays token credits for successful
// transactions that missed their credit (crash between status update and
// ledger write).
func runReconciler(ctx context.Context, svc ports.PaymentService, log zerolog.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ReconcileCredits(ctx)
			if err != nil {
				log.Error().Err(err).Msg("credit reconciliation failed")
				continue
			}
			if n > 0 {
				log.Warn().Int64("replayed", n).Msg("reconciled missed token credits")
			}
		}
	}
}
