// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/parpass/caddie/internal/config"
	"github.com/parpass/caddie/internal/logging"
	"github.com/parpass/caddie/internal/metrics"
	"github.com/parpass/caddie/internal/model"
	"github.com/parpass/caddie/internal/recommend"
)

// ServiceBanner is the message returned by GET /.
const ServiceBanner = "ParPass ML API"

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	cfg    *config.Config
	store  *model.Store
	engine *recommend.Engine
}

// NewHandler creates a handler backed by the given store and engine.
func NewHandler(cfg *config.Config, store *model.Store, engine *recommend.Engine) *Handler {
	return &Handler{
		cfg:    cfg,
		store:  store,
		engine: engine,
	}
}

// Root handles GET / and returns the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, &rootResponse{
		Message:     ServiceBanner,
		Status:      "running",
		ModelLoaded: h.store.Loaded(),
	})
}

// Health handles GET /health. It always returns 200; the model load state
// is reported in the body, not the status code.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, &healthResponse{
		Status:      "healthy",
		ModelLoaded: h.store.Loaded(),
	})
}

// HealthLive handles liveness probe requests. Returns 200 if the process
// is alive, regardless of the model state.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &healthResponse{
		Status:      "alive",
		ModelLoaded: h.store.Loaded(),
	})
}

// HealthReady handles readiness probe requests. Returns 503 until the
// model store is loaded, so orchestrators hold traffic from instances
// that would only answer 503 anyway.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.store.Loaded() {
		respondJSON(w, http.StatusServiceUnavailable, &healthResponse{
			Status:      "not_ready",
			ModelLoaded: false,
		})
		return
	}

	respondJSON(w, http.StatusOK, &healthResponse{
		Status:      "ready",
		ModelLoaded: true,
	})
}

// Recommendations handles GET /recommendations/{member_id}.
//
// Query parameters:
//   - limit: maximum results to return (default 5, capped at the
//     configured max; an explicit 0 returns an empty list, while
//     negative or non-numeric values fall back to the default)
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
		return
	}

	if !h.store.Loaded() {
		metrics.RecordModelNotLoaded()
		respondError(w, http.StatusServiceUnavailable, ErrCodeModelNotLoaded, "Model not loaded")
		return
	}

	memberID := chi.URLParam(r, "member_id")

	limit := h.cfg.Recommend.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if limit > h.cfg.Recommend.MaxLimit {
		limit = h.cfg.Recommend.MaxLimit
	}

	recs := h.engine.Recommend(memberID, limit)
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	source := "model"
	if !h.store.HasInteractions(strings.TrimSpace(memberID)) {
		source = "fallback"
	}
	metrics.RecordRecommendation(source)

	logging.Ctx(r.Context()).Debug().
		Str("member_id", memberID).
		Int("limit", limit).
		Int("results", len(recs)).
		Str("source", source).
		Msg("Recommendations served")

	respondJSON(w, http.StatusOK, &recommendationsResponse{
		MemberID:        memberID,
		Recommendations: recs,
	})
}
