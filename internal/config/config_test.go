// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Catalog.TopN != 11 {
		t.Errorf("expected default top_n 11, got %d", cfg.Catalog.TopN)
	}
	if cfg.Catalog.SuggestLimit != 10 {
		t.Errorf("expected default suggest limit 10, got %d", cfg.Catalog.SuggestLimit)
	}
	if cfg.TMDB.TrendingCount != 5 {
		t.Errorf("expected default trending count 5, got %d", cfg.TMDB.TrendingCount)
	}
	if cfg.TMDB.Timeout <= 0 {
		t.Error("TMDB timeout must be finite and positive")
	}
	if cfg.Server.Port != 8390 {
		t.Errorf("expected default port 8390, got %d", cfg.Server.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty catalog path", func(c *Config) { c.Catalog.Path = "" }},
		{"empty matrix path", func(c *Config) { c.Catalog.MatrixPath = "" }},
		{"zero top_n", func(c *Config) { c.Catalog.TopN = 0 }},
		{"zero tmdb timeout", func(c *Config) { c.TMDB.Timeout = 0 }},
		{"bad tmdb url", func(c *Config) { c.TMDB.BaseURL = "not-a-url" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty history path", func(c *Config) { c.History.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("TMDB_API_KEY", "test-key")
	t.Setenv("CATALOG_PATH", "/tmp/movies.json")
	t.Setenv("RECOMMEND_TOP_N", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Errorf("expected api key override, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Catalog.Path != "/tmp/movies.json" {
		t.Errorf("expected catalog path override, got %q", cfg.Catalog.Path)
	}
	if cfg.Catalog.TopN != 5 {
		t.Errorf("expected top_n 5, got %d", cfg.Catalog.TopN)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != "https://a.example" {
		t.Errorf("expected parsed CORS origins, got %v", cfg.API.CORSOrigins)
	}
}

func TestLoadIgnoresUnmappedEnvVars(t *testing.T) {
	t.Setenv("SOME_RANDOM_VARIABLE", "should-not-matter")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Server.Timeout)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"HTTP_PORT", "server.port"},
		{"SIMILARITY_PATH", "catalog.matrix_path"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
