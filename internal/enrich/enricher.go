// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package enrich decorates ranked catalog items with live metadata.
//
// The hard contract of this package: enrichment never fails the
// caller. Any provider failure (network, non-2xx, malformed payload,
// timeout, open circuit breaker) degrades to a fixed fallback record
// for that one item, and every item's outcome is independent of its
// neighbors.
package enrich

import (
	"context"
	"math"
	"sync"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/metrics"
	"github.com/reelpick/reelpick/internal/tmdb"
)

// Fallback values substituted when the provider fails or omits a field.
const (
	PlaceholderPoster = "https://via.placeholder.com/300x450?text=Poster+Not+Available"
	FallbackPlot      = "Plot unavailable"
	FallbackYear      = "N/A"
)

// Recommendation is one enriched result in a recommendation response.
type Recommendation struct {
	Title  string  `json:"title"`
	Poster string  `json:"poster"`
	Plot   string  `json:"plot"`
	Year   string  `json:"year"`
	Rating float64 `json:"rating"`
	TMDBID int     `json:"tmdb_id"`
}

// Trending is one entry in the trending feed.
type Trending struct {
	Title  string  `json:"title"`
	Poster string  `json:"poster"`
	Year   string  `json:"year"`
	Rating float64 `json:"rating"`
	TMDBID int     `json:"tmdb_id"`
}

// Provider is the metadata source capability the enricher consumes.
// Production wires the circuit-breaker TMDB client; tests wire fakes.
type Provider interface {
	GetMovieDetails(ctx context.Context, id int) (*tmdb.Movie, error)
	GetTrendingMovies(ctx context.Context) (*tmdb.TrendingResponse, error)
}

// Enricher maps provider payloads onto response records, substituting
// fallbacks field by field.
type Enricher struct {
	provider      Provider
	imageBaseURL  string
	trendingCount int
}

// New creates an Enricher backed by the given provider.
func New(provider Provider, cfg *config.TMDBConfig) *Enricher {
	count := cfg.TrendingCount
	if count < 1 {
		count = 5
	}
	return &Enricher{
		provider:      provider,
		imageBaseURL:  cfg.ImageBaseURL,
		trendingCount: count,
	}
}

// Enrich fetches metadata for one movie. It never returns an error:
// on any provider failure the full fallback record comes back instead.
func (e *Enricher) Enrich(ctx context.Context, id int, title string) Recommendation {
	movie, err := e.provider.GetMovieDetails(ctx, id)
	if err != nil {
		logging.Debug().Err(err).Int("movie_id", id).Str("title", title).Msg("Enrichment failed, serving fallback")
		metrics.RecordEnrichmentFallback("recommendation")
		return e.fallback(id, title)
	}

	return Recommendation{
		Title:  title,
		Poster: e.posterURL(movie.PosterPath),
		Plot:   plotOrFallback(movie.Overview),
		Year:   yearFromDate(movie.ReleaseDate),
		Rating: roundRating(movie.VoteAverage),
		TMDBID: idOrFallback(movie.ID, id),
	}
}

// EnrichAll enriches every item concurrently, one goroutine per item.
// Result order matches input order and per-item failures stay
// independent. The slice is never nil.
func (e *Enricher) EnrichAll(ctx context.Context, items []catalog.Item) []Recommendation {
	results := make([]Recommendation, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item catalog.Item) {
			defer wg.Done()
			results[i] = e.Enrich(ctx, item.ID, item.Title)
		}(i, item)
	}
	wg.Wait()

	return results
}

// EnrichTrending returns the top trending movies. Total provider
// failure yields an empty slice, never an error.
func (e *Enricher) EnrichTrending(ctx context.Context) []Trending {
	resp, err := e.provider.GetTrendingMovies(ctx)
	if err != nil {
		logging.Debug().Err(err).Msg("Trending fetch failed, serving empty feed")
		metrics.RecordEnrichmentFallback("trending")
		return []Trending{}
	}

	limit := e.trendingCount
	if limit > len(resp.Results) {
		limit = len(resp.Results)
	}

	trending := make([]Trending, 0, limit)
	for _, movie := range resp.Results[:limit] {
		trending = append(trending, Trending{
			Title:  movie.Title,
			Poster: e.posterURL(movie.PosterPath),
			Year:   yearFromDate(movie.ReleaseDate),
			Rating: roundRating(movie.VoteAverage),
			TMDBID: movie.ID,
		})
	}
	return trending
}

// fallback constructs the full substitute record. Pure construction,
// no provider access.
func (e *Enricher) fallback(id int, title string) Recommendation {
	return Recommendation{
		Title:  title,
		Poster: PlaceholderPoster,
		Plot:   FallbackPlot,
		Year:   FallbackYear,
		Rating: 0.0,
		TMDBID: id,
	}
}

func (e *Enricher) posterURL(path string) string {
	if path == "" {
		return PlaceholderPoster
	}
	return e.imageBaseURL + path
}

func plotOrFallback(overview string) string {
	if overview == "" {
		return FallbackPlot
	}
	return overview
}

// yearFromDate extracts the 4-character year from a release date.
func yearFromDate(date string) string {
	if len(date) < 4 {
		return FallbackYear
	}
	return date[:4]
}

// roundRating rounds to one decimal place.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

func idOrFallback(id, fallbackID int) int {
	if id == 0 {
		return fallbackID
	}
	return id
}
