// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelpick/config.yaml",
	"/etc/reelpick/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8390,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Path:         "/data/catalog.json",
			MatrixPath:   "/data/similarity.json",
			TopN:         11,
			SuggestLimit: 10,
		},
		TMDB: TMDBConfig{
			BaseURL:       "https://api.themoviedb.org/3",
			ImageBaseURL:  "https://image.tmdb.org/t/p/w500",
			APIKey:        "",
			Timeout:       10 * time.Second,
			RateLimit:     40, // TMDB allows ~50 req/s; stay under it
			RateBurst:     10,
			TrendingCount: 5,
		},
		History: HistoryConfig{
			Path:        "/data/history",
			RecentLimit: 10,
		},
		API: APIConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
// defaults, then an optional YAML file, then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches CONFIG_PATH then the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths that may arrive as comma-separated
// strings from environment variables.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment variables cannot
// pollute the config.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - CATALOG_PATH -> catalog.path
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":             "server.port",
		"http_host":             "server.host",
		"http_timeout":          "server.timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",

		// Catalog mappings
		"catalog_path":          "catalog.path",
		"similarity_path":       "catalog.matrix_path",
		"recommend_top_n":       "catalog.top_n",
		"catalog_suggest_limit": "catalog.suggest_limit",

		// TMDB mappings
		"tmdb_base_url":       "tmdb.base_url",
		"tmdb_image_base_url": "tmdb.image_base_url",
		"tmdb_api_key":        "tmdb.api_key",
		"tmdb_timeout":        "tmdb.timeout",
		"tmdb_rate_limit":     "tmdb.rate_limit",
		"tmdb_rate_burst":     "tmdb.rate_burst",
		"tmdb_trending_count": "tmdb.trending_count",

		// History mappings
		"history_path":         "history.path",
		"history_recent_limit": "history.recent_limit",

		// API mappings
		"rate_limit_requests": "api.rate_limit_reqs",
		"rate_limit_window":   "api.rate_limit_window",
		"disable_rate_limit":  "api.rate_limit_disabled",
		"cors_origins":        "api.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
