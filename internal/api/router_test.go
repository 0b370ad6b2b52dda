// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parpass/caddie/internal/model"
	"github.com/parpass/caddie/internal/recommend"
)

func newTestRouter(t *testing.T, store *model.Store) http.Handler {
	t.Helper()

	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"*"}

	engine, err := recommend.NewEngine(recommend.Config{
		SimilarityThreshold: cfg.Recommend.SimilarityThreshold,
		ExplanationNames:    cfg.Recommend.ExplanationNames,
	}, store)
	if err != nil {
		t.Fatalf("Failed to build engine: %v", err)
	}

	return NewRouter(cfg, store, engine).Setup()
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loadedStore(t))

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "root", method: http.MethodGet, target: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK},
		{name: "health_live", method: http.MethodGet, target: "/health/live", wantStatus: http.StatusOK},
		{name: "health_ready", method: http.MethodGet, target: "/health/ready", wantStatus: http.StatusOK},
		{name: "recommendations", method: http.MethodGet, target: "/recommendations/M1", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "unknown_route", method: http.MethodGet, target: "/nope", wantStatus: http.StatusNotFound},
		{name: "post_rejected", method: http.MethodPost, target: "/recommendations/M1", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.target, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MemberIDParam(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loadedStore(t))

	req := httptest.NewRequest(http.MethodGet, "/recommendations/M1?limit=1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body recommendationsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.MemberID != "M1" {
		t.Errorf("member_id = %q, want %q", body.MemberID, "M1")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loadedStore(t))

	req := httptest.NewRequest(http.MethodOptions, "/recommendations/M1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loadedStore(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "test-request-id")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_UnloadedStore503(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, model.NewUnloaded())

	req := httptest.NewRequest(http.MethodGet, "/recommendations/unknown_member?limit=3", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
