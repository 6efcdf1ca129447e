// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Recommendation pipeline outcomes and latency
// - TMDB upstream calls and circuit breaker state
// - Metadata enrichment fallbacks
// - History store writes

var (
	// API Endpoint Metrics
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Pipeline Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty_query", "not_found", "internal_error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// TMDB Upstream Metrics
	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "TMDB API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "movie_details", "trending"
	)

	TMDBRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_request_errors_total",
			Help: "Total number of failed TMDB API requests",
		},
		[]string{"operation"},
	)

	// Enrichment Metrics
	EnrichmentFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_fallbacks_total",
			Help: "Total number of recommendations served with fallback metadata",
		},
		[]string{"source"}, // "recommendation", "trending"
	)

	// History Store Metrics
	HistoryWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_writes_total",
			Help: "Total number of history record writes",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Circuit Breaker Metrics
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
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a recommendation pipeline outcome
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordTMDBRequest records a TMDB upstream call
func RecordTMDBRequest(operation string, duration time.Duration, err error) {
	TMDBRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		TMDBRequestErrors.WithLabelValues(operation).Inc()
	}
}

// RecordEnrichmentFallback records a recommendation served with placeholder metadata
func RecordEnrichmentFallback(source string) {
	EnrichmentFallbacks.WithLabelValues(source).Inc()
}

// RecordHistoryWrite records the outcome of a history store write
func RecordHistoryWrite(err error) {
	if err != nil {
		HistoryWrites.WithLabelValues("failure").Inc()
	} else {
		HistoryWrites.WithLabelValues("success").Inc()
	}
}
