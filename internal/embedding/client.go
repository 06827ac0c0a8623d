// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package embedding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/outfitter/internal/breaker"
	"github.com/tomtom215/outfitter/internal/metrics"
)

// maxResponseBytes bounds the service response body.
const maxResponseBytes = 4 << 20

// ClientConfig configures the HTTP embedding client.
type ClientConfig struct {
	// URL is the embedding endpoint.
	URL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// Model names the embedding model. It namespaces cache keys.
	// Default: clip-vit-base-patch32.
	Model string

	// Dimension is the expected vector length. 0 accepts any length.
	Dimension int

	// RequestsPerSecond limits outbound calls. 0 disables limiting.
	RequestsPerSecond float64

	// Burst is the limiter burst. Default: 4.
	Burst int

	// Breaker configures the circuit breaker.
	Breaker breaker.Settings
}

// Client calls an HTTP embedding service.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	limiter *rate.Limiter
	breaker *breaker.Breaker[[]float32]
	logger  zerolog.Logger
}

type embedRequest struct {
	Image string `json:"image"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// NewClient creates an embedding client. A nil httpClient uses a client with
// no overall timeout; per-call deadlines come from the context.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg ClientConfig, httpClient *http.Client, logger zerolog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("embedding url is required")
	}
	if cfg.Model == "" {
		cfg.Model = "clip-vit-base-patch32"
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 4
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	bs := cfg.Breaker
	bs.Ignore = isInputError

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		breaker: breaker.New[[]float32]("embedding", bs),
		logger:  logger.With().Str("component", "embedding").Logger(),
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Embed implements Embedder.
func (c *Client) Embed(ctx context.Context, src Source) ([]float32, error) {
	if src.Empty() {
		return nil, ErrEmptySource
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit: %w", err)
	}

	start := time.Now()
	vec, err := c.breaker.Execute(func() ([]float32, error) {
		return c.post(ctx, src)
	})
	metrics.RecordExternalRequest("embedding", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return vec, nil
}

func (c *Client) post(ctx context.Context, src Source) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Image: src.Reference()})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed embedResponse
	decodeErr := json.Unmarshal(respBody, &parsed)

	switch {
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnsupportedMediaType,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s (%d)", ErrUnsupportedImage, parsed.Error, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("embedding service error (%d): %s", resp.StatusCode, parsed.Error)
	case decodeErr != nil:
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	case len(parsed.Embedding) == 0:
		return nil, errors.New("embedding service returned an empty vector")
	case c.cfg.Dimension > 0 && len(parsed.Embedding) != c.cfg.Dimension:
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(parsed.Embedding), c.cfg.Dimension)
	}

	c.logger.Debug().Str("source", src.String()).Int("dim", len(parsed.Embedding)).Msg("image embedded")
	return parsed.Embedding, nil
}

// isInputError reports errors caused by the input rather than the service.
func isInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedImage) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

var _ Embedder = (*Client)(nil)
