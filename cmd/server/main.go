// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package main is the entry point for the Reelpick server.
//
// Reelpick is a self-hosted movie recommendation service. It loads a
// precomputed catalog and item-to-item similarity matrix at startup,
// resolves free-text queries to catalog titles, ranks similar movies,
// enriches the results with live TMDB metadata, and records search
// history per user.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered Koanf v2 sources (defaults, config.yaml, env)
//  2. Logging: zerolog with configured level and format
//  3. Catalog: the catalog and similarity matrix artifacts (fatal on
//     missing, malformed or dimension-mismatched artifacts)
//  4. History: BadgerDB store for per-user search records
//  5. TMDB client: circuit-breaker wrapped, rate-limited metadata source
//  6. HTTP server: chi router under a suture supervision tree
//
// # Configuration
//
// Environment variables override config.yaml which overrides defaults:
//   - HTTP_PORT: listen port (default 8390)
//   - CATALOG_PATH / SIMILARITY_PATH: artifact locations
//   - TMDB_API_KEY: metadata provider key; without it every result
//     carries placeholder metadata
//   - HISTORY_PATH: BadgerDB directory
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server stops
// accepting connections, in-flight requests get the configured
// shutdown timeout, then the history store closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelpick/reelpick/internal/api"
	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/enrich"
	"github.com/reelpick/reelpick/internal/history"
	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/recommend"
	"github.com/reelpick/reelpick/internal/supervisor"
	"github.com/reelpick/reelpick/internal/supervisor/services"
	"github.com/reelpick/reelpick/internal/tmdb"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Reelpick")
	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("matrix_path", cfg.Catalog.MatrixPath).
		Str("history_path", cfg.History.Path).
		Int("top_n", cfg.Catalog.TopN).
		Msg("Configuration loaded")

	// The catalog is the one dependency the service cannot run
	// without: missing, malformed or mismatched artifacts are fatal.
	store, err := catalog.Load(cfg.Catalog.Path, cfg.Catalog.MatrixPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}
	logging.Info().Int("items", store.Len()).Msg("Catalog loaded")

	historyStore, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open history store")
	}
	defer func() {
		if err := historyStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing history store")
		}
	}()

	// TMDB is optional: without a key (or with it unreachable) the
	// enricher serves fallback metadata and the service stays up.
	tmdbClient := tmdb.NewCircuitBreakerClient(&cfg.TMDB)
	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("TMDB_API_KEY not set, all metadata will be placeholders")
	} else if err := tmdbClient.Ping(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Failed to connect to TMDB (enrichment will degrade to fallbacks)")
	} else {
		logging.Info().Msg("Connected to TMDB successfully")
	}

	enricher := enrich.New(tmdbClient, &cfg.TMDB)
	service := recommend.NewService(store, enricher, historyStore, cfg.Catalog.TopN)

	handler := api.NewHandler(store, service, enricher, historyStore, tmdbClient, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// Supervisor tree logs through slog via the zerolog adapter.
	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
