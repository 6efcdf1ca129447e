// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package tmdb talks to The Movie Database API. It provides movie
// detail and trending lookups with client-side rate limiting and
// circuit breaker protection. Callers treat every error the same way:
// the enricher converts failures into fallback metadata, so no method
// here retries beyond the rate limiter's pacing.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/metrics"
)

// maxErrorBodySize limits the response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// ClientInterface defines the TMDB operations the service consumes.
// Implemented by Client for production and by fakes in tests.
//
// All methods accept a context for cancellation and are safe for
// concurrent use.
type ClientInterface interface {
	Ping(ctx context.Context) error
	GetMovieDetails(ctx context.Context, id int) (*Movie, error)
	GetTrendingMovies(ctx context.Context) (*TrendingResponse, error)
}

// Client is the concrete TMDB API client. Outbound requests share a
// token-bucket rate limiter so concurrent enrichment fan-out stays
// inside TMDB's request budget.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a TMDB client from configuration.
func NewClient(cfg *config.TMDBConfig) *Client {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// readBodyForError reads the response body for error reporting (max 64KB)
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// makeRequest performs a rate-limited GET against a TMDB path and
// decodes the JSON body into result. The API key travels as a query
// parameter per TMDB's v3 auth scheme.
func (c *Client) makeRequest(ctx context.Context, operation, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.RecordTMDBRequest(operation, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		metrics.TMDBRequestErrors.WithLabelValues(operation).Inc()
		return fmt.Errorf("%s request failed with status %d: %s", operation, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	return nil
}

// Ping verifies connectivity and API key validity via the lightweight
// /configuration endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}
	return c.makeRequest(ctx, "configuration", "/configuration", nil, &result)
}

// GetMovieDetails fetches metadata for a single movie by TMDB id.
func (c *Client) GetMovieDetails(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	path := fmt.Sprintf("/movie/%d", id)
	if err := c.makeRequest(ctx, "movie_details", path, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetTrendingMovies fetches this week's trending movie feed.
func (c *Client) GetTrendingMovies(ctx context.Context) (*TrendingResponse, error) {
	var trending TrendingResponse
	if err := c.makeRequest(ctx, "trending", "/trending/movie/week", nil, &trending); err != nil {
		return nil, err
	}
	return &trending, nil
}
