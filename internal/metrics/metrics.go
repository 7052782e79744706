package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the billing core.
type Metrics struct {
	PurchasesInitiated prometheus.Counter
	VerifyOutcomes     *prometheus.CounterVec
	TokensCredited     prometheus.Counter
	TokensConsumed     *prometheus.CounterVec
	DebitsRejected     prometheus.Counter
	SweptTransactions  prometheus.Counter
	GatewayLatency     prometheus.Histogram
}

// New registers the billing metrics on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PurchasesInitiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "billing_purchases_initiated_total",
			Help: "Number of purchase transactions created.",
		}),
		VerifyOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_verify_outcomes_total",
			Help: "Verification outcomes by terminal status.",
		}, []string{"status"}),
		TokensCredited: factory.NewCounter(prometheus.CounterOpts{
			Name: "billing_tokens_credited_total",
			Help: "Tokens credited from successful purchases.",
		}),
		TokensConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billing_tokens_consumed_total",
			Help: "Tokens consumed by service kind.",
		}, []string{"service_kind"}),
		DebitsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "billing_debits_rejected_total",
			Help: "Debit attempts rejected for insufficient balance.",
		}),
		SweptTransactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "billing_transactions_swept_total",
			Help: "Pending transactions cancelled by the TTL sweeper.",
		}),
		GatewayLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "billing_gateway_verify_seconds",
			Help:    "Latency of gateway verification calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
