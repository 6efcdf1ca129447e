// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package tmdb

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
)

// fakeClient is a scriptable ClientInterface for breaker tests.
type fakeClient struct {
	movie    *Movie
	trending *TrendingResponse
	err      error
	calls    int
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeClient) GetMovieDetails(ctx context.Context, id int) (*Movie, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.movie, nil
}

func (f *fakeClient) GetTrendingMovies(ctx context.Context) (*TrendingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

func TestCircuitBreakerPassesThroughSuccess(t *testing.T) {
	fake := &fakeClient{movie: &Movie{ID: 42, Title: "Answer"}}
	cbc := wrapWithBreaker(fake)

	movie, err := cbc.GetMovieDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetMovieDetails() error = %v", err)
	}
	if movie.ID != 42 || movie.Title != "Answer" {
		t.Errorf("got %+v, want ID=42 Title=Answer", movie)
	}
}

func TestCircuitBreakerPassesThroughFailure(t *testing.T) {
	wantErr := errors.New("upstream down")
	fake := &fakeClient{err: wantErr}
	cbc := wrapWithBreaker(fake)

	if _, err := cbc.GetMovieDetails(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Fatalf("GetMovieDetails() error = %v, want %v", err, wantErr)
	}
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	fake := &fakeClient{err: errors.New("upstream down")}
	cbc := wrapWithBreaker(fake)

	// 10 failed requests at 100% failure rate trips the breaker.
	for i := 0; i < 10; i++ {
		_, _ = cbc.GetMovieDetails(context.Background(), i)
	}

	callsBefore := fake.calls
	_, err := cbc.GetMovieDetails(context.Background(), 11)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want %v", err, gobreaker.ErrOpenState)
	}
	if fake.calls != callsBefore {
		t.Errorf("open breaker still invoked underlying client (%d calls, want %d)", fake.calls, callsBefore)
	}
}

func TestCircuitBreakerTrendingPassThrough(t *testing.T) {
	fake := &fakeClient{trending: &TrendingResponse{Results: []Movie{{ID: 1}, {ID: 2}}}}
	cbc := wrapWithBreaker(fake)

	trending, err := cbc.GetTrendingMovies(context.Background())
	if err != nil {
		t.Fatalf("GetTrendingMovies() error = %v", err)
	}
	if len(trending.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(trending.Results))
	}
}
