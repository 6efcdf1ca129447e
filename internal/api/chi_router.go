// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/middleware"
)

// Router wires handlers and middleware into the HTTP routing table.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from configuration and a handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.API.CORSOrigins
	mwConfig.RateLimitRequests = cfg.API.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.API.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.API.RateLimitDisabled

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes using Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints get permissive rate limiting so monitoring can
	// poll freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/titles", router.handler.Titles)
		r.Post("/recommend", router.handler.Recommend)
		r.Get("/trending", router.handler.Trending)

		r.Route("/history/user/{userID}", func(r chi.Router) {
			r.Get("/", router.handler.HistoryRecent)
			r.Get("/stats", router.handler.HistoryStats)
		})
	})

	// Prometheus scrape endpoint, outside the API rate limits.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
