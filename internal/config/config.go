// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"time"

	"github.com/tomtom215/outfitter/internal/breaker"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Embedding  EmbeddingConfig  `koanf:"embedding"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Search     SearchConfig     `koanf:"search"`
	Outfit     OutfitConfig     `koanf:"outfit"`
	Pools      PoolsConfig      `koanf:"pools"`
	Breaker    breaker.Settings `koanf:"breaker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"` // request body cap, reference uploads included
	Environment     string        `koanf:"environment"`    // development, staging or production
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds authentication and HTTP hardening settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // none or jwt
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// EmbeddingConfig configures the embedding service client and its cache.
type EmbeddingConfig struct {
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	Dimension         int           `koanf:"dimension"` // 0 accepts any length
	Timeout           time.Duration `koanf:"timeout"`   // per candidate request
	Concurrency       int           `koanf:"concurrency"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// CacheMaxCost bounds the in-memory tier in bytes. 0 disables it.
	CacheMaxCost int64         `koanf:"cache_max_cost"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`

	// CacheDir enables the persistent badger tier when set.
	CacheDir       string        `koanf:"cache_dir"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// Enabled reports whether reranking can run.
func (e *EmbeddingConfig) Enabled() bool {
	return e.URL != ""
}

// ClassifierConfig configures the vision classifier.
type ClassifierConfig struct {
	Provider          string        `koanf:"provider"` // gemini or none
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	Temperature       float32       `koanf:"temperature"`
	MaxOutputTokens   int32         `koanf:"max_output_tokens"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxItems          int           `koanf:"max_items"`
	Concurrency       int           `koanf:"concurrency"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// Enabled reports whether a classifier should be built.
func (c *ClassifierConfig) Enabled() bool {
	return c.Provider == "gemini" && c.APIKey != ""
}

// SearchConfig configures eBay search and the account-deletion endpoint.
type SearchConfig struct {
	BaseURL           string        `koanf:"base_url"`
	AccessToken       string        `koanf:"access_token"`
	MarketplaceID     string        `koanf:"marketplace_id"`
	Limit             int           `koanf:"limit"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	VerifyToken       string        `koanf:"verify_token"`
	DeletionEndpoint  string        `koanf:"deletion_endpoint"`
}

// Enabled reports whether search can run.
func (s *SearchConfig) Enabled() bool {
	return s.AccessToken != ""
}

// OutfitConfig holds default composer preferences. Requests override them.
type OutfitConfig struct {
	MaxOutfits      int     `koanf:"max_outfits"`
	TopKPerCategory int     `koanf:"top_k_per_category"`
	BeamWidth       int     `koanf:"beam_width"`
	AllowReuse      bool    `koanf:"allow_reuse"`
	BudgetMax       float64 `koanf:"budget_max"` // 0 means no budget
}

// PoolsConfig configures pool building.
type PoolsConfig struct {
	TopK       int `koanf:"top_k"` // 0 keeps every item
	MinPerSlot int `koanf:"min_per_slot"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
