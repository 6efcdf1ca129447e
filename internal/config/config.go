// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package config loads and validates Reelpick configuration.
//
// Configuration is layered with Koanf v2 (highest priority wins):
//  1. Environment variables (see envTransformFunc for the mapping)
//  2. Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the Reelpick server.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Catalog CatalogConfig `koanf:"catalog"`
	TMDB    TMDBConfig    `koanf:"tmdb"`
	History HistoryConfig `koanf:"history"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP listen port.
	Port int `koanf:"port" validate:"gte=1,lte=65535"`

	// Host is the listen address.
	Host string `koanf:"host" validate:"required"`

	// Timeout bounds request read/write on the HTTP server.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// ShutdownTimeout is the grace period for in-flight requests on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// CatalogConfig locates the precomputed catalog artifacts.
//
// The catalog file and the similarity matrix are produced offline and
// must share the same item ordering; the loader enforces dimensional
// consistency at startup.
type CatalogConfig struct {
	// Path is the JSON catalog artifact (ordered list of {id, title}).
	Path string `koanf:"path" validate:"required"`

	// MatrixPath is the JSON N×N similarity matrix artifact.
	MatrixPath string `koanf:"matrix_path" validate:"required"`

	// TopN is the number of neighbors returned per recommendation.
	TopN int `koanf:"top_n" validate:"gte=1,lte=50"`

	// SuggestLimit is the default cap for title autocomplete results.
	SuggestLimit int `koanf:"suggest_limit" validate:"gte=1,lte=100"`
}

// TMDBConfig holds settings for the outbound TMDB metadata provider.
type TMDBConfig struct {
	// BaseURL is the TMDB API root.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// ImageBaseURL is prepended to poster paths.
	ImageBaseURL string `koanf:"image_base_url" validate:"required,url"`

	// APIKey authenticates requests. Required to serve real metadata;
	// without it every enrichment degrades to the fallback record.
	APIKey string `koanf:"api_key"`

	// Timeout bounds each outbound request. Must be finite to keep
	// recommendation latency bounded.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RateLimit is the client-side requests-per-second budget.
	RateLimit float64 `koanf:"rate_limit" validate:"gt=0"`

	// RateBurst is the rate limiter burst size.
	RateBurst int `koanf:"rate_burst" validate:"gte=1"`

	// TrendingCount is how many trending movies the home feed shows.
	TrendingCount int `koanf:"trending_count" validate:"gte=1,lte=20"`
}

// HistoryConfig holds settings for the BadgerDB search-history store.
type HistoryConfig struct {
	// Path is the BadgerDB directory for history records.
	Path string `koanf:"path" validate:"required"`

	// RecentLimit is the default number of recent searches returned.
	RecentLimit int `koanf:"recent_limit" validate:"gte=1,lte=100"`
}

// APIConfig holds HTTP API behavior settings.
type APIConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid config: field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
