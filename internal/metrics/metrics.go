// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package metrics

import (
	"strconv"
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
		[]string{"operation", "table"},
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

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: "similar", "daily"; outcome: "ok", "empty", "error", "cached"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation computation time in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	ClusterSelectedK = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cluster_selected_total",
			Help: "Cluster sweeps by selected k (0 means unclustered)",
		},
		[]string{"k"},
	)

	ClusterFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cluster_fallbacks_total",
			Help: "Cluster sweeps that fell back to unclustered favorites",
		},
		[]string{"reason"}, // "no_positive_silhouette", "timeout"
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Daily recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Daily recommendation cache misses",
		},
	)

	// Feature Store Metrics
	FeatureRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feature_store_rows",
			Help: "Rows in the current feature matrix snapshot",
		},
	)

	FeatureRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feature_store_refreshes_total",
			Help: "Feature artifact refreshes by outcome",
		},
		[]string{"outcome"}, // "appended", "unchanged", "error"
	)
)

// RecordDBQuery records a DuckDB query duration and, when err is non-nil, an error.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a finished recommendation request.
func RecordRecommendation(kind, outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(kind, outcome).Inc()
	RecommendDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordClusterSelection records the outcome of one cluster sweep. k is 0
// when the favorites stayed unclustered; reason is empty unless it fell back.
func RecordClusterSelection(k int, reason string) {
	ClusterSelectedK.WithLabelValues(strconv.Itoa(k)).Inc()
	if reason != "" {
		ClusterFallbacks.WithLabelValues(reason).Inc()
	}
}

// RecordCacheLookup records a daily recommendation cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordFeatureRefresh records a refresh attempt and the resulting row count.
func RecordFeatureRefresh(added, rows int, err error) {
	switch {
	case err != nil:
		FeatureRefreshes.WithLabelValues("error").Inc()
		return
	case added > 0:
		FeatureRefreshes.WithLabelValues("appended").Inc()
	default:
		FeatureRefreshes.WithLabelValues("unchanged").Inc()
	}
	FeatureRows.Set(float64(rows))
}
