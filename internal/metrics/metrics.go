// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitter_http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitter_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// SettlementOps counts settlement mutations by operation name.
	SettlementOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitter_settlement_ops_total",
		Help: "Settlement toggle operations applied.",
	}, []string{"op"})

	// ExpensesCreated counts recorded expenses, labeled by entry currency.
	ExpensesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitter_expenses_created_total",
		Help: "Expenses recorded.",
	}, []string{"currency"})
)
