// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"net/http"
	"time"

	"github.com/reelpick/reelpick/internal/models"
)

// TitlesResponse is the suggestion endpoint payload.
type TitlesResponse struct {
	Query  string   `json:"query"`
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// Titles handles title suggestion requests for typeahead.
//
// Method: GET
// Path: /api/v1/titles?q=<prefix>&limit=<n>
//
// A blank q yields an empty list. Limit defaults from configuration
// and is capped at 100.
func (h *Handler) Titles(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")

	limit := getIntParam(r, "limit", h.config.Catalog.SuggestLimit)
	if limit < 1 {
		limit = h.config.Catalog.SuggestLimit
	}
	if limit > maxSuggestLimit {
		limit = maxSuggestLimit
	}

	titles := h.store.Suggest(query, limit)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: TitlesResponse{
			Query:  query,
			Titles: titles,
			Count:  len(titles),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// TrendingResponse is the trending endpoint payload.
type TrendingResponse struct {
	Results interface{} `json:"results"`
	Count   int         `json:"count"`
}

// Trending handles trending feed requests.
//
// Method: GET
// Path: /api/v1/trending
//
// Upstream failure yields an empty list, not an error.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	start := time.Now()
	trending := h.trending.EnrichTrending(r.Context())

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: TrendingResponse{
			Results: trending,
			Count:   len(trending),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
