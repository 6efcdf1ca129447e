// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reelpick/reelpick/internal/history"
	"github.com/reelpick/reelpick/internal/models"
)

// HistoryRecentResponse is the recent-searches payload.
type HistoryRecentResponse struct {
	UserID  string           `json:"user_id"`
	Records []history.Record `json:"records"`
	Count   int              `json:"count"`
}

// HistoryRecent returns a user's recent searches, newest first.
//
// Method: GET
// Path: /api/v1/history/user/{userID}?limit=<n>
func (h *Handler) HistoryRecent(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing user ID", nil)
		return
	}

	limit := getIntParam(r, "limit", h.config.History.RecentLimit)
	if limit < 1 || limit > 100 {
		limit = h.config.History.RecentLimit
	}

	start := time.Now()
	records, err := h.history.RecentForUser(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read history", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: HistoryRecentResponse{
			UserID:  userID,
			Records: records,
			Count:   len(records),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HistoryStatsResponse is the per-user stats payload.
type HistoryStatsResponse struct {
	UserID string        `json:"user_id"`
	Stats  history.Stats `json:"stats"`
}

// HistoryStats returns a user's search totals.
//
// Method: GET
// Path: /api/v1/history/user/{userID}/stats
func (h *Handler) HistoryStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing user ID", nil)
		return
	}

	start := time.Now()
	stats, err := h.history.StatsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read history stats", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: HistoryStatsResponse{
			UserID: userID,
			Stats:  stats,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
