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

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CatalogSize   int     `json:"catalog_size"`
	TMDBConnected bool    `json:"tmdb_connected"`
	Uptime        float64 `json:"uptime"`
}

// Health reports overall service health. The catalog is mandatory; a
// reachable TMDB is not, since enrichment degrades to fallbacks.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	tmdbConnected := h.metadata != nil && h.metadata.Ping(r.Context()) == nil

	status := "healthy"
	if h.store == nil {
		status = "degraded"
	} else if !tmdbConnected {
		// Recommendations still work, metadata is placeholders only.
		status = "degraded"
	}

	catalogSize := 0
	if h.store != nil {
		catalogSize = h.store.Len()
	}

	health := HealthStatus{
		Status:        status,
		Version:       Version,
		CatalogSize:   catalogSize,
		TMDBConnected: tmdbConnected,
		Uptime:        time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Ready means the catalog is loaded and the history store is open;
// TMDB reachability is deliberately excluded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if h.store == nil || h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Service is not ready", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready": true,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
