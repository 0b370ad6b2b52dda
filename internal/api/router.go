// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

// Package api provides the HTTP surface of the recommendation service
// using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parpass/caddie/internal/config"
	"github.com/parpass/caddie/internal/middleware"
	"github.com/parpass/caddie/internal/model"
	"github.com/parpass/caddie/internal/recommend"
)

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	cfg     *config.Config
	handler *Handler
}

// NewRouter creates a router for the given store and engine.
func NewRouter(cfg *config.Config, store *model.Store, engine *recommend.Engine) *Router {
	return &Router{
		cfg:     cfg,
		handler: NewHandler(cfg, store, engine),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order. CORS is global
	// so OPTIONS preflight requests are handled everywhere.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(router.cfg.Security.CORSOrigins))

	r.Get("/", router.handler.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/recommendations/{member_id}", router.handler.Recommendations)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
