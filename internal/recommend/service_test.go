// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/config"
	"github.com/reelpick/reelpick/internal/enrich"
	"github.com/reelpick/reelpick/internal/history"
	"github.com/reelpick/reelpick/internal/tmdb"
)

// fakeEnricher echoes items back as bare recommendations and counts
// invocations so tests can assert no external calls happened.
type fakeEnricher struct {
	calls int
}

func (f *fakeEnricher) EnrichAll(ctx context.Context, items []catalog.Item) []enrich.Recommendation {
	f.calls++
	results := make([]enrich.Recommendation, len(items))
	for i, item := range items {
		results[i] = enrich.Recommendation{Title: item.Title, TMDBID: item.ID}
	}
	return results
}

// fakeSink captures history writes.
type fakeSink struct {
	records []history.Record
	err     error
}

func (f *fakeSink) Add(ctx context.Context, rec history.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func newTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	items := []catalog.Item{
		{ID: 1, Title: "Inception"},
		{ID: 2, Title: "Interstellar"},
		{ID: 3, Title: "Tenet"},
	}
	matrix := [][]float64{
		{1.0, 0.8, 0.3},
		{0.8, 1.0, 0.5},
		{0.3, 0.5, 1.0},
	}
	store, err := catalog.New(items, matrix)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return store
}

func TestRecommendSuccess(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{}
	sink := &fakeSink{}
	svc := NewService(newTestCatalog(t), enricher, sink, 11)

	resp, err := svc.Recommend(context.Background(), "alice", "inception", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if resp.MatchedTitle != "Inception" {
		t.Errorf("MatchedTitle = %q, want Inception", resp.MatchedTitle)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	// Row [1.0, 0.8, 0.3]: Interstellar (0.8) then Tenet (0.3).
	if resp.Results[0].Title != "Interstellar" || resp.Results[1].Title != "Tenet" {
		t.Errorf("Results = [%q, %q], want [Interstellar, Tenet]", resp.Results[0].Title, resp.Results[1].Title)
	}

	if len(sink.records) != 1 {
		t.Fatalf("history records = %d, want exactly 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.UserID != "alice" || rec.Query != "inception" || rec.ResultsCount != 2 {
		t.Errorf("history record = %+v", rec)
	}
	if rec.Timestamp.IsZero() {
		t.Error("history record has zero timestamp")
	}
}

func TestRecommendEmptyQueryMakesNoExternalCalls(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"", "   ", "\t\n"} {
		enricher := &fakeEnricher{}
		sink := &fakeSink{}
		svc := NewService(newTestCatalog(t), enricher, sink, 11)

		_, err := svc.Recommend(context.Background(), "alice", query, 0)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Recommend(%q) error = %v, want ErrEmptyQuery", query, err)
		}
		if enricher.calls != 0 {
			t.Errorf("Recommend(%q) invoked the enricher", query)
		}
		if len(sink.records) != 0 {
			t.Errorf("Recommend(%q) wrote history", query)
		}
	}
}

func TestRecommendNoMatchWritesNoHistory(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{}
	sink := &fakeSink{}
	svc := NewService(newTestCatalog(t), enricher, sink, 11)

	_, err := svc.Recommend(context.Background(), "alice", "nomatchtitle", 0)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Recommend() error = %v, want ErrNoMatch", err)
	}
	if enricher.calls != 0 {
		t.Error("enricher invoked for unmatched query")
	}
	if len(sink.records) != 0 {
		t.Error("history written for unmatched query")
	}
}

func TestRecommendDefaultTopN(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{}
	sink := &fakeSink{}
	svc := NewService(newTestCatalog(t), enricher, sink, 11)

	resp, err := svc.Recommend(context.Background(), "alice", "tenet", 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// Catalog of 3 minus self caps the default 11 at 2.
	if len(resp.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(resp.Results))
	}
}

func TestRecommendSinkFailureStillReturnsResults(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{}
	sink := &fakeSink{err: errors.New("disk full")}
	svc := NewService(newTestCatalog(t), enricher, sink, 11)

	resp, err := svc.Recommend(context.Background(), "alice", "inception", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v, want nil despite sink failure", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(resp.Results))
	}
}

// failingProvider fails metadata lookups for one specific id.
type failingProvider struct {
	failID int
}

func (p *failingProvider) GetMovieDetails(ctx context.Context, id int) (*tmdb.Movie, error) {
	if id == p.failID {
		return nil, errors.New("http 500")
	}
	return &tmdb.Movie{
		ID:          id,
		Overview:    "a real plot",
		ReleaseDate: "2010-07-16",
		VoteAverage: 8.0,
		PosterPath:  "/poster.jpg",
	}, nil
}

func (p *failingProvider) GetTrendingMovies(ctx context.Context) (*tmdb.TrendingResponse, error) {
	return &tmdb.TrendingResponse{}, nil
}

func TestRecommendPartialEnrichmentFailure(t *testing.T) {
	t.Parallel()

	items := []catalog.Item{
		{ID: 1, Title: "Inception"},
		{ID: 2, Title: "Interstellar"},
		{ID: 3, Title: "Tenet"},
		{ID: 4, Title: "Dunkirk"},
	}
	matrix := [][]float64{
		{1.0, 0.9, 0.8, 0.7},
		{0.9, 1.0, 0.5, 0.4},
		{0.8, 0.5, 1.0, 0.3},
		{0.7, 0.4, 0.3, 1.0},
	}
	store, err := catalog.New(items, matrix)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	cfg := &config.TMDBConfig{
		ImageBaseURL:  "https://image.tmdb.org/t/p/w500",
		Timeout:       time.Second,
		TrendingCount: 5,
	}
	enricher := enrich.New(&failingProvider{failID: 3}, cfg)
	sink := &fakeSink{}
	svc := NewService(store, enricher, sink, 11)

	resp, err := svc.Recommend(context.Background(), "alice", "inception", 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3 despite one provider failure", len(resp.Results))
	}

	// Neighbors in order: Interstellar (id 2), Tenet (id 3, fails), Dunkirk (id 4).
	if resp.Results[0].Plot != "a real plot" {
		t.Errorf("Results[0].Plot = %q, want real metadata", resp.Results[0].Plot)
	}
	if resp.Results[1].Plot != enrich.FallbackPlot {
		t.Errorf("Results[1].Plot = %q, want fallback", resp.Results[1].Plot)
	}
	if resp.Results[1].Rating != 0.0 {
		t.Errorf("Results[1].Rating = %f, want 0.0", resp.Results[1].Rating)
	}
	if resp.Results[2].Plot != "a real plot" {
		t.Errorf("Results[2].Plot = %q, want real metadata", resp.Results[2].Plot)
	}

	if len(sink.records) != 1 || sink.records[0].ResultsCount != 3 {
		t.Errorf("history = %+v, want one record with ResultsCount 3", sink.records)
	}
}
