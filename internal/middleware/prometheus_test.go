// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrometheusMetrics_PassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/recommendations/M1", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if !called {
		t.Fatal("Wrapped handler was not called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestPrometheusMetrics_DefaultStatusOK(t *testing.T) {
	t.Parallel()

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		// No explicit WriteHeader; should record 200.
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsResponseWriter_CapturesStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapper := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	wrapper.WriteHeader(http.StatusServiceUnavailable)

	if wrapper.statusCode != http.StatusServiceUnavailable {
		t.Errorf("statusCode = %d, want %d", wrapper.statusCode, http.StatusServiceUnavailable)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Underlying status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
