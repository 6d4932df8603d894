// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Metrics
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

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation evaluations",
		},
		[]string{"source"}, // "request" or "saved"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation evaluations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates_scored",
			Help:    "Number of catalog candidates scored per evaluation",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	RecommendationTopScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_top_score_ratio",
			Help:    "Best candidate score as a fraction of the maximum possible score",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	RecommendationNoPreferences = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_no_preferences_total",
			Help: "Total number of evaluations with no active criteria",
		},
	)

	RecommendationSnapshot = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_snapshot_total",
			Help: "Catalog snapshot reuse by result",
		},
		[]string{"result"}, // "hit" or "miss"
	)

	// Catalog Metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_universities",
			Help: "Number of universities in the catalog",
		},
	)

	CatalogImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_imports_total",
			Help: "Total number of catalog imports",
		},
		[]string{"format", "result"}, // result: "success", "error"
	)

	CatalogImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_import_duration_seconds",
			Help:    "Duration of catalog imports in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogImportRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_rows_total",
			Help: "Total number of rows read by catalog imports",
		},
		[]string{"outcome"}, // "imported", "skipped"
	)

	CatalogLastImport = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_import_timestamp_seconds",
			Help: "Unix timestamp of the last successful catalog import",
		},
	)

	// Profile Metrics
	ProfileOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_operations_total",
			Help: "Total number of saved preference and favorite operations",
		},
		[]string{"operation", "result"},
	)

	// Authorization Metrics
	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization decisions",
		},
		[]string{"role", "result"}, // result: "allow", "deny"
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

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

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

// Recommendation describes one finished evaluation.
type Recommendation struct {
	Source        string // "request" or "saved"
	Duration      time.Duration
	Candidates    int
	TopScore      float64
	MaxScore      float64
	NoPreferences bool
	CacheHit      bool
}

// RecordRecommendation records the metrics of one evaluation.
//
//nolint:gocritic // hugeParam: called once per request
func RecordRecommendation(r Recommendation) {
	RecommendationsTotal.WithLabelValues(r.Source).Inc()
	RecommendationDuration.Observe(r.Duration.Seconds())
	RecommendationCandidates.Observe(float64(r.Candidates))

	if r.NoPreferences {
		RecommendationNoPreferences.Inc()
	} else if r.MaxScore > 0 && r.Candidates > 0 {
		RecommendationTopScore.Observe(r.TopScore / r.MaxScore)
	}

	if r.CacheHit {
		RecommendationSnapshot.WithLabelValues("hit").Inc()
	} else {
		RecommendationSnapshot.WithLabelValues("miss").Inc()
	}
}

// RecordCatalogImport records the outcome of a catalog import.
func RecordCatalogImport(format string, duration time.Duration, imported, skipped int, err error) {
	CatalogImportDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogImportsTotal.WithLabelValues(format, "error").Inc()
		return
	}
	CatalogImportsTotal.WithLabelValues(format, "success").Inc()
	CatalogImportRows.WithLabelValues("imported").Add(float64(imported))
	CatalogImportRows.WithLabelValues("skipped").Add(float64(skipped))
	CatalogLastImport.Set(float64(time.Now().Unix()))
}

// SetCatalogSize updates the catalog size gauge.
func SetCatalogSize(n int) {
	CatalogSize.Set(float64(n))
}

// RecordProfileOperation records a profile store operation.
func RecordProfileOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ProfileOperations.WithLabelValues(operation, result).Inc()
}

// RecordAuthzDecision records an authorization decision.
func RecordAuthzDecision(role string, allowed bool) {
	result := "deny"
	if allowed {
		result = "allow"
	}
	AuthzDecisions.WithLabelValues(role, result).Inc()
}

// Circuit breaker states as exported by CircuitBreakerState.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// RecordBreakerTransition records a circuit breaker state change.
func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordBreakerRequest records a request through a circuit breaker.
// consecutiveFailures is the breaker's failure streak after the request.
func RecordBreakerRequest(name, result string, consecutiveFailures uint32) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
	CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(float64(consecutiveFailures))
}
