// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

// Command server runs the ParPass course recommendation API.
//
// Startup order: configuration, logging, model store, scoring engine,
// router, supervisor tree. A missing model artifact does not abort
// startup; the service runs unloaded and answers 503 on recommendation
// requests until restarted with an artifact present.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/parpass/caddie/internal/api"
	"github.com/parpass/caddie/internal/config"
	"github.com/parpass/caddie/internal/logging"
	"github.com/parpass/caddie/internal/metrics"
	"github.com/parpass/caddie/internal/model"
	"github.com/parpass/caddie/internal/recommend"
	"github.com/parpass/caddie/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("model_path", cfg.Model.Path).
		Msg("Starting ParPass ML API")

	store, err := model.Load(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	metrics.SetModelState(store.Loaded(), store.MemberCount(), store.CourseCount())

	engine, err := recommend.NewEngine(recommend.Config{
		SimilarityThreshold: cfg.Recommend.SimilarityThreshold,
		ExplanationNames:    cfg.Recommend.ExplanationNames,
	}, store)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	router := api.NewRouter(cfg, store, engine)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout

	slogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(slogger, treeCfg)
	tree.Add(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)

	logging.Info().Str("addr", server.Addr).Msg("Server listening")

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	logging.Info().Msg("Server stopped")
	return nil
}
