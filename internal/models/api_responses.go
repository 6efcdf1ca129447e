// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package models defines the wire types shared by the HTTP layer.
package models

import "time"

// APIResponse is the standardized wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details. Message is always safe to
// show to callers; internal failures arrive here already sanitized.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - EMPTY_QUERY: Blank recommendation query
//   - NOT_FOUND: No catalog title matched the query
//   - INTERNAL_ERROR: Request failed for an unspecified reason
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendRequest is the POST /api/v1/recommend body.
type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Query  string `json:"query" validate:"max=256"`
	TopN   int    `json:"top_n" validate:"gte=0,lte=50"`
}
