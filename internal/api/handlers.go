// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package api provides the HTTP surface: routing, middleware wiring
// and request handlers. Handlers depend on narrow capability
// interfaces so tests can substitute fakes for the orchestrator,
// trending feed and history store.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/enrich"
	"github.com/reelpick/reelpick/internal/history"
	"github.com/reelpick/reelpick/internal/recommend"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// maxSuggestLimit caps the titles endpoint result size regardless of
// the requested limit.
const maxSuggestLimit = 100

// Recommender runs the full recommendation cycle.
// Satisfied by *recommend.Service.
type Recommender interface {
	Recommend(ctx context.Context, userID, query string, topN int) (*recommend.Response, error)
}

// TrendingSource serves the trending feed. Satisfied by *enrich.Enricher.
type TrendingSource interface {
	EnrichTrending(ctx context.Context) []enrich.Trending
}

// HistoryReader reads back recorded searches. Satisfied by *history.Store.
type HistoryReader interface {
	RecentForUser(ctx context.Context, userID string, limit int) ([]history.Record, error)
	StatsForUser(ctx context.Context, userID string) (history.Stats, error)
}

// Pinger checks upstream metadata connectivity for health reporting.
// Satisfied by the TMDB circuit breaker client. May be nil when no
// API key is configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds all HTTP request handlers and their dependencies.
type Handler struct {
	store       *catalog.Store
	recommender Recommender
	trending    TrendingSource
	history     HistoryReader
	metadata    Pinger
	config      *config.Config
	validate    *validator.Validate
	startTime   time.Time
}

// NewHandler creates the handler set.
func NewHandler(store *catalog.Store, recommender Recommender, trending TrendingSource, historyReader HistoryReader, metadata Pinger, cfg *config.Config) *Handler {
	return &Handler{
		store:       store,
		recommender: recommender,
		trending:    trending,
		history:     historyReader,
		metadata:    metadata,
		config:      cfg,
		validate:    validator.New(),
		startTime:   time.Now(),
	}
}

// requireMethod checks the request method and returns true if it matches
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return false
	}
	return true
}
