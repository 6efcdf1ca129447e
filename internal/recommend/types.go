// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package recommend ranks similar titles and orchestrates the full
// request cycle: match a query against the catalog, rank neighbors by
// similarity, enrich each with live metadata, and record the search.
package recommend

import (
	"github.com/reelpick/reelpick/internal/enrich"
)

// RankedNeighbor is a candidate item with its similarity score.
// Intermediate value only; never persisted.
type RankedNeighbor struct {
	Index int
	Score float64
}

// Response is a successful recommendation result set, ordered by
// descending similarity to the matched title.
type Response struct {
	Query        string                  `json:"query"`
	MatchedTitle string                  `json:"matched_title"`
	Results      []enrich.Recommendation `json:"results"`
}
