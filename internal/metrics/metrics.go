// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package metrics registers the Prometheus instrumentation: API latency and
// throughput, refresh cycles, ingestion counts, cache efficiency, and the
// upstream circuit breaker state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Refresh cycle metrics
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refresh_duration_seconds",
			Help:    "Duration of upstream refresh cycles in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_total",
			Help: "Total number of refresh cycles",
		},
		[]string{"trigger", "result"}, // trigger: "scheduled", "manual"; result: "success", "partial", "failure"
	)

	RefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful refresh",
		},
	)

	// Ingestion metrics
	IngestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_records_total",
			Help: "Total number of records normalized from upstream feeds",
		},
		[]string{"source"}, // "leaderboard", "posts"
	)

	IngestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_errors_total",
			Help: "Total number of ingestion failures",
		},
		[]string{"source", "op"}, // op: "fetch", "decode"
	)

	PostsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "posts_stored",
			Help: "Number of raw post records currently held in the activity store",
		},
	)

	UsersStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leaderboard_users",
			Help: "Number of users on the current base leaderboard",
		},
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRefresh records one refresh cycle with its trigger and outcome.
// result is "success", "partial" (one feed failed), or "failure".
func RecordRefresh(trigger, result string, duration time.Duration) {
	RefreshDuration.Observe(duration.Seconds())
	RefreshTotal.WithLabelValues(trigger, result).Inc()
	if result == "success" {
		RefreshLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordIngest records the record count of one normalized feed.
func RecordIngest(source string, records int) {
	IngestRecords.WithLabelValues(source).Add(float64(records))
}

// RecordIngestError records one ingestion failure.
func RecordIngestError(source, op string) {
	IngestErrors.WithLabelValues(source, op).Inc()
}
