// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package config

import (
	"fmt"
	"net/url"
	"slices"
	"time"
)

// minJWTSecretLength is the shortest accepted HMAC secret.
const minJWTSecretLength = 32

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validateEmbedding,
		c.validateClassifier,
		c.validateSearch,
		c.validateOutfit,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive")
	}
	if !slices.Contains([]string{"development", "staging", "production"}, c.Server.Environment) {
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	levels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled"}
	if !slices.Contains(levels, c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "none":
	case "jwt":
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when AUTH_MODE=jwt", minJWTSecretLength)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be none or jwt, got %q", c.Security.AuthMode)
	}

	if c.Security.AuthMode != "none" && c.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production with authentication enabled")
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	e := &c.Embedding
	if e.URL != "" {
		if err := validateHTTPURL(e.URL); err != nil {
			return fmt.Errorf("EMBEDDING_URL: %w", err)
		}
	}
	if e.Dimension < 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must not be negative")
	}
	if e.Concurrency <= 0 {
		return fmt.Errorf("EMBEDDING_CONCURRENCY must be positive")
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive")
	}
	if e.RequestsPerSecond < 0 || e.CacheMaxCost < 0 {
		return fmt.Errorf("embedding rate and cache size must not be negative")
	}
	if e.CacheDir != "" && (e.GCDiscardRatio <= 0 || e.GCDiscardRatio >= 1) {
		return fmt.Errorf("EMBEDDING_GC_DISCARD_RATIO must be in (0, 1), got %g", e.GCDiscardRatio)
	}
	return nil
}

func (c *Config) validateClassifier() error {
	cl := &c.Classifier
	if cl.Provider != "gemini" && cl.Provider != "none" {
		return fmt.Errorf("CLASSIFIER_PROVIDER must be gemini or none, got %q", cl.Provider)
	}
	if cl.MaxItems <= 0 || cl.Concurrency <= 0 {
		return fmt.Errorf("CLASSIFIER_MAX_ITEMS and CLASSIFIER_CONCURRENCY must be positive")
	}
	if cl.Timeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if err := validateHTTPURL(c.Search.BaseURL); err != nil {
		return fmt.Errorf("EBAY_BASE_URL: %w", err)
	}
	if c.Search.Limit <= 0 || c.Search.Limit > 200 {
		return fmt.Errorf("EBAY_SEARCH_LIMIT must be between 1 and 200, got %d", c.Search.Limit)
	}
	if (c.Search.VerifyToken == "") != (c.Search.DeletionEndpoint == "") {
		return fmt.Errorf("EBAY_VERIFY_TOKEN and EBAY_DELETION_ENDPOINT must be set together")
	}
	return nil
}

func (c *Config) validateOutfit() error {
	o := &c.Outfit
	if o.MaxOutfits <= 0 || o.TopKPerCategory <= 0 || o.BeamWidth <= 0 {
		return fmt.Errorf("outfit max_outfits, top_k_per_category and beam_width must be positive")
	}
	if o.BudgetMax < 0 {
		return fmt.Errorf("OUTFIT_BUDGET_MAX must not be negative")
	}
	if c.Pools.TopK < 0 || c.Pools.MinPerSlot < 0 {
		return fmt.Errorf("pools top_k and min_per_slot must not be negative")
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
