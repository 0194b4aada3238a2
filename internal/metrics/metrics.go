// Package metrics exposes the Prometheus collectors of the player registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "players_http_requests_total",
		Help: "The total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "players_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	HTTPPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "players_http_panics_total",
		Help: "The total number of handler panics turned into 500 responses",
	})
	HTTPRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "players_http_rate_limited_total",
		Help: "The total number of requests rejected by the rate limiter",
	})

	// Player metrics
	PlayerMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "players_mutations_total",
		Help: "The total number of successful player mutations by operation",
	}, []string{"operation"})
	PlayerValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "players_validation_failures_total",
		Help: "The total number of rejected player bodies by field",
	}, []string{"field"})
	StoreSnapshotSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "players_store_snapshot_size",
		Help:    "Number of players fetched per listing snapshot",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// Mutation operation labels
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)
