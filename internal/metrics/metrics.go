// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_rows",
			Help: "Number of plans loaded per catalog",
		},
		[]string{"catalog"}, // "mobile", "broadband"
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of catalog CSV loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"catalog"},
	)

	CatalogLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_errors_total",
			Help: "Total number of failed catalog loads",
		},
		[]string{"catalog"},
	)

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
			Help: "Total number of rate limit rejections",
		},
		[]string{"group"}, // "pages", "api", "health"
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by flow and outcome",
		},
		[]string{"flow", "outcome"}, // flow: speedtest, mobile, broadband
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent computing a recommendation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"flow"},
	)

	RecommendationPlans = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_plans",
			Help:    "Number of plans returned per recommendation",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 64, 256},
		},
		[]string{"flow"},
	)

	// Predictor Metrics
	PredictorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "predictor_duration_seconds",
			Help:    "Predictor invocation latency",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"predictor"}, // "xgboost", "onnx", "knn"
	)

	PredictorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictor_errors_total",
			Help: "Total number of failed predictor invocations",
		},
		[]string{"predictor"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Result Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
		[]string{"flow"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
		[]string{"flow"},
	)
)

// RecordCatalogLoad records a catalog load and, on success, its row count.
func RecordCatalogLoad(catalog string, rows int, duration time.Duration, err error) {
	CatalogLoadDuration.WithLabelValues(catalog).Observe(duration.Seconds())
	if err != nil {
		CatalogLoadErrors.WithLabelValues(catalog).Inc()
		return
	}
	CatalogRows.WithLabelValues(catalog).Set(float64(rows))
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

// RecordRecommendation records a finished recommendation.
func RecordRecommendation(flow, outcome string, plans int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(flow, outcome).Inc()
	RecommendationDuration.WithLabelValues(flow).Observe(duration.Seconds())
	RecommendationPlans.WithLabelValues(flow).Observe(float64(plans))
}

// RecordPrediction records one predictor call.
func RecordPrediction(predictor string, duration time.Duration, err error) {
	PredictorDuration.WithLabelValues(predictor).Observe(duration.Seconds())
	if err != nil {
		PredictorErrors.WithLabelValues(predictor).Inc()
	}
}

// RecordBreakerTransition records a circuit breaker state change.
// state is one of 0 (closed), 1 (half-open), 2 (open).
func RecordBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(flow string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(flow).Inc()
	} else {
		CacheMisses.WithLabelValues(flow).Inc()
	}
}
