// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

// Package metrics provides Prometheus instrumentation for the service:
// API request latency and throughput, model load state, and
// recommendation serving counters. Collectors are registered on the
// default registry via promauto and exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

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
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Model Store Metrics
	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_loaded",
			Help: "Whether the recommendation model is loaded (1) or not (0)",
		},
	)

	ModelMembers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_members",
			Help: "Number of members in the loaded model",
		},
	)

	ModelCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_courses",
			Help: "Number of courses in the loaded model",
		},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation responses served",
		},
		[]string{"source"}, // "model" or "fallback"
	)

	RecommendationsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_rejected_total",
			Help: "Total number of recommendation requests rejected because the model was not loaded",
		},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetModelState updates the model gauges after a load attempt.
func SetModelState(loaded bool, members, courses int) {
	if loaded {
		ModelLoaded.Set(1)
	} else {
		ModelLoaded.Set(0)
	}
	ModelMembers.Set(float64(members))
	ModelCourses.Set(float64(courses))
}

// RecordRecommendation counts a served recommendation response.
// source is "model" for scored results and "fallback" for the catalog list.
func RecordRecommendation(source string) {
	RecommendationsServed.WithLabelValues(source).Inc()
}

// RecordModelNotLoaded counts a request rejected with 503.
func RecordModelNotLoaded() {
	RecommendationsRejected.Inc()
}
