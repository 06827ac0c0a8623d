// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

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

	"github.com/tomtom215/outfitter/internal/breaker"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/outfitter/config.yaml",
	"/etc/outfitter/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    2 * time.Minute, // a full styling run classifies up to 40 images
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    12 << 20,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			AuthMode:        "none",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Embedding: EmbeddingConfig{
			Model:          "clip-vit-base-patch32",
			Timeout:        15 * time.Second,
			Concurrency:    4,
			Burst:          4,
			CacheMaxCost:   64 << 20,
			CacheTTL:       24 * time.Hour,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		Classifier: ClassifierConfig{
			Provider:        "gemini",
			Model:           "gemini-2.5-flash",
			Temperature:     0.2,
			MaxOutputTokens: 120,
			Timeout:         20 * time.Second,
			MaxItems:        40,
			Concurrency:     4,
		},
		Search: SearchConfig{
			BaseURL:       "https://api.ebay.com",
			MarketplaceID: "EBAY_US",
			Limit:         24,
			Timeout:       10 * time.Second,
		},
		Outfit: OutfitConfig{
			MaxOutfits:      8,
			TopKPerCategory: 6,
			BeamWidth:       40,
		},
		Pools: PoolsConfig{
			MinPerSlot: 5,
		},
		Breaker: breaker.DefaultSettings(),
	}
}

// Load reads configuration from defaults, the optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
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

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings (env vars).
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config keys.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_max_body_bytes":   "server.max_body_bytes",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Embedding service
	"embedding_url":              "embedding.url",
	"embedding_api_key":          "embedding.api_key",
	"embedding_model":            "embedding.model",
	"embedding_dimension":        "embedding.dimension",
	"embedding_timeout":          "embedding.timeout",
	"embedding_concurrency":      "embedding.concurrency",
	"embedding_rps":              "embedding.requests_per_second",
	"embedding_cache_max_cost":   "embedding.cache_max_cost",
	"embedding_cache_ttl":        "embedding.cache_ttl",
	"embedding_cache_dir":        "embedding.cache_dir",
	"embedding_gc_interval":      "embedding.gc_interval",
	"embedding_gc_discard_ratio": "embedding.gc_discard_ratio",

	// Classifier
	"classifier_provider":    "classifier.provider",
	"gemini_api_key":         "classifier.api_key",
	"gemini_model":           "classifier.model",
	"classifier_timeout":     "classifier.timeout",
	"classifier_max_items":   "classifier.max_items",
	"classifier_concurrency": "classifier.concurrency",
	"classifier_rps":         "classifier.requests_per_second",

	// eBay
	"ebay_base_url":          "search.base_url",
	"ebay_access_token":      "search.access_token",
	"ebay_marketplace_id":    "search.marketplace_id",
	"ebay_search_limit":      "search.limit",
	"ebay_rps":               "search.requests_per_second",
	"ebay_verify_token":      "search.verify_token",
	"ebay_deletion_endpoint": "search.deletion_endpoint",

	// Composer defaults
	"outfit_max_outfits":  "outfit.max_outfits",
	"outfit_top_k":        "outfit.top_k_per_category",
	"outfit_beam_width":   "outfit.beam_width",
	"outfit_allow_reuse":  "outfit.allow_reuse",
	"outfit_budget_max":   "outfit.budget_max",
	"pools_top_k":         "pools.top_k",
	"pools_min_per_slot":  "pools.min_per_slot",
	"breaker_timeout":     "breaker.timeout",
	"breaker_fail_ratio":  "breaker.failure_ratio",
	"breaker_min_samples": "breaker.min_requests",
}

// envTransformFunc maps an environment variable to its config key. Unmapped
// variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
