// Package metrics holds the Prometheus collectors for the recommendation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation requests by outcome (success, no_history, failed)",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End to end recommendation pipeline duration",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	ItemsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_items_excluded_total",
			Help: "Watched items left out of the scoring batch by reason",
		},
		[]string{"reason"},
	)

	HistoryLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_history_lookup_failures_total",
			Help: "Per-user watch history lookups that failed",
		},
	)

	Suggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_suggestions_total",
			Help: "Scoring suggestions by resolution outcome (resolved, unresolved, watched)",
		},
		[]string{"outcome"},
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_external_request_duration_seconds",
			Help:    "Latency of calls to external services",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation", "status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommendation_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_metadata_cache_requests_total",
			Help: "Catalog metadata cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
