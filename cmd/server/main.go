// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/paperwise/internal/api"
	"github.com/tomtom215/paperwise/internal/config"
	"github.com/tomtom215/paperwise/internal/database"
	"github.com/tomtom215/paperwise/internal/logging"
	"github.com/tomtom215/paperwise/internal/supervisor"
	"github.com/tomtom215/paperwise/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LoggingSettings())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("features_path", cfg.Features.Path).
		Str("db_path", cfg.Database.Path).
		Msg("Starting Paperwise")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	components, err := initRecommender(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommender")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", db.Path()).Msg("Database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(components.engine, db, components.store, api.HandlerConfig{
		MaxSearchResults: cfg.API.MaxSearchResults,
		Version:          version,
	})
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.API.CORSOrigins,
		RateLimitRequests: cfg.API.RateLimitRequests,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		RateLimitDisabled: cfg.API.RateLimitDisabled,
		RequestTimeout:    cfg.API.RequestTimeout,
	})
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	if cfg.Features.RefreshInterval > 0 {
		tree.AddDataService(services.NewFeatureRefreshService(
			components.refresher,
			components.store,
			components.engine,
			services.FeatureRefreshConfig{
				Interval:         cfg.Features.RefreshInterval,
				RefreshOnStartup: components.store.Len() == 0,
			},
			logging.Logger(),
		))
	} else {
		logging.Info().Msg("Feature refresh disabled (features.refresh_interval=0)")
	}
	if cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval, logging.Logger()))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}
