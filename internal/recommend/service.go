// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/enrich"
	"github.com/reelpick/reelpick/internal/history"
	"github.com/reelpick/reelpick/internal/logging"
	"github.com/reelpick/reelpick/internal/metrics"
)

// Sentinel errors returned by Recommend. The HTTP layer maps these to
// user-facing messages; ErrInternal deliberately carries no detail.
var (
	ErrEmptyQuery = errors.New("recommend: empty query")
	ErrNoMatch    = errors.New("recommend: no matching title")
	ErrInternal   = errors.New("recommend: request failed")
)

// Enricher is the metadata decoration capability the orchestrator
// consumes. Satisfied by *enrich.Enricher.
type Enricher interface {
	EnrichAll(ctx context.Context, items []catalog.Item) []enrich.Recommendation
}

// HistorySink records completed searches. Satisfied by *history.Store.
// The sink serializes its own writes.
type HistorySink interface {
	Add(ctx context.Context, rec history.Record) error
}

// Service composes matcher, ranker, enricher and history sink into one
// request/response cycle. No cross-request state beyond the read-only
// catalog.
type Service struct {
	store    *catalog.Store
	enricher Enricher
	sink     HistorySink
	topN     int
	now      func() time.Time
}

// NewService creates the orchestrator. defaultTopN applies when a
// request does not specify its own.
func NewService(store *catalog.Store, enricher Enricher, sink HistorySink, defaultTopN int) *Service {
	if defaultTopN <= 0 {
		defaultTopN = 11
	}
	return &Service{
		store:    store,
		enricher: enricher,
		sink:     sink,
		topN:     defaultTopN,
		now:      time.Now,
	}
}

// Recommend resolves query to a catalog item, ranks its neighbors,
// enriches them and records the search.
//
// Blank query returns ErrEmptyQuery without touching the catalog; an
// unmatched query returns ErrNoMatch. Neither records history. Any
// internal failure is logged server-side and surfaced as ErrInternal
// with no detail, also without history. Only a fully assembled
// response emits one history record.
func (s *Service) Recommend(ctx context.Context, userID, query string, topN int) (*Response, error) {
	start := s.now()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		metrics.RecordRecommendation("empty_query", time.Since(start))
		return nil, ErrEmptyQuery
	}

	match := s.store.Match(trimmed)
	if !match.Found {
		metrics.RecordRecommendation("not_found", time.Since(start))
		return nil, ErrNoMatch
	}

	if topN <= 0 {
		topN = s.topN
	}

	ranked, err := Rank(s.store, match.Index, topN)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("index", match.Index).Msg("Ranking failed")
		metrics.RecordRecommendation("internal_error", time.Since(start))
		return nil, ErrInternal
	}

	matched, err := s.store.Item(match.Index)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int("index", match.Index).Msg("Matched item lookup failed")
		metrics.RecordRecommendation("internal_error", time.Since(start))
		return nil, ErrInternal
	}

	items := make([]catalog.Item, 0, len(ranked))
	for _, n := range ranked {
		item, err := s.store.Item(n.Index)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Int("index", n.Index).Msg("Ranked item lookup failed")
			metrics.RecordRecommendation("internal_error", time.Since(start))
			return nil, ErrInternal
		}
		items = append(items, item)
	}

	results := s.enricher.EnrichAll(ctx, items)

	rec := history.Record{
		UserID:       userID,
		Query:        trimmed,
		ResultsCount: len(results),
		Timestamp:    s.now().UTC(),
	}
	if err := s.sink.Add(ctx, rec); err != nil {
		// History is write-only bookkeeping; a sink failure must not
		// discard an already assembled response.
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("History write failed")
		metrics.RecordHistoryWrite(err)
	} else {
		metrics.RecordHistoryWrite(nil)
	}

	metrics.RecordRecommendation("ok", time.Since(start))

	return &Response{
		Query:        trimmed,
		MatchedTitle: matched.Title,
		Results:      results,
	}, nil
}
