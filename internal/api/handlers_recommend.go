// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/reelpick/reelpick/internal/models"
	"github.com/reelpick/reelpick/internal/recommend"
)

// Recommend handles recommendation requests.
//
// Method: POST
// Path: /api/v1/recommend
// Body: {"user_id": "...", "query": "...", "top_n": 11}
//
// Response:
//   - 200: Ordered enriched recommendation list
//   - 400: Missing body, invalid fields, or blank query
//   - 404: No catalog title matched the query
//   - 500: Internal failure (no detail exposed)
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}

	if apiErr := h.validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()

	resp, err := h.recommender.Recommend(r.Context(), req.UserID, req.Query, req.TopN)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrEmptyQuery):
			respondError(w, http.StatusBadRequest, "EMPTY_QUERY", "Please enter a movie title", nil)
		case errors.Is(err, recommend.ErrNoMatch):
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found in catalog", nil)
		default:
			// Internal detail stays server-side.
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
