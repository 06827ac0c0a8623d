// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/outfitter/internal/breaker"
	"github.com/tomtom215/outfitter/internal/metrics"
	"github.com/tomtom215/outfitter/internal/models"
)

// ErrEmptyQuery is returned for a blank search query.
var ErrEmptyQuery = errors.New("empty search query")

const (
	searchPath       = "/buy/browse/v1/item_summary/search"
	maxSearchBody    = 8 << 20
	maxLimit         = 200
	defaultBaseURL   = "https://api.ebay.com"
	defaultLimit     = 6
	defaultMarketID  = "EBAY_US"
)

// Searcher returns candidate items for a text query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.Item, error)
}

// StatusError is returned when eBay answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ebay search failed (%d): %s", e.StatusCode, e.Body)
}

// Config configures the eBay client.
type Config struct {
	// BaseURL of the eBay API.
	// Default: https://api.ebay.com.
	BaseURL string

	// AccessToken is an OAuth application token.
	AccessToken string

	// MarketplaceID is sent as X-EBAY-C-MARKETPLACE-ID.
	// Default: EBAY_US.
	MarketplaceID string

	// Limit is the default number of results.
	// Default: 6.
	Limit int

	// RequestsPerSecond limits calls. 0 disables limiting.
	RequestsPerSecond float64

	// Breaker configures the circuit breaker.
	Breaker breaker.Settings
}

// EbayClient searches eBay listings.
type EbayClient struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *breaker.Breaker[[]models.Item]
	logger  zerolog.Logger
}

// NewEbayClient creates an eBay search client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEbayClient(cfg Config, httpClient *http.Client, logger zerolog.Logger) (*EbayClient, error) {
	if cfg.AccessToken == "" {
		return nil, errors.New("ebay access token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.MarketplaceID == "" {
		cfg.MarketplaceID = defaultMarketID
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultLimit
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	bs := cfg.Breaker
	bs.Ignore = func(err error) bool {
		var se *StatusError
		if errors.As(err, &se) {
			return se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
		}
		return errors.Is(err, context.Canceled)
	}

	return &EbayClient{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 2),
		breaker: breaker.New[[]models.Item]("ebay", bs),
		logger:  logger.With().Str("component", "ebay").Logger(),
	}, nil
}

// Search implements Searcher. limit <= 0 uses the configured default.
func (c *EbayClient) Search(ctx context.Context, query string, limit int) ([]models.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = c.cfg.Limit
	}
	limit = min(limit, maxLimit)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ebay rate limit: %w", err)
	}

	start := time.Now()
	items, err := c.breaker.Execute(func() ([]models.Item, error) {
		return c.search(ctx, query, limit)
	})
	metrics.RecordExternalRequest("ebay", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("query", query).Int("results", len(items)).Msg("ebay search complete")
	return items, nil
}

func (c *EbayClient) search(ctx context.Context, query string, limit int) ([]models.Item, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := c.cfg.BaseURL + searchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.cfg.MarketplaceID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ebay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsed.items(), nil
}

type searchResponse struct {
	ItemSummaries []itemSummary `json:"itemSummaries"`
}

type itemSummary struct {
	Title string `json:"title"`
	Price *struct {
		Value    flexString `json:"value"`
		Currency string     `json:"currency"`
	} `json:"price"`
	Image *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"image"`
	ItemWebURL string `json:"itemWebUrl"`
	ItemID     string `json:"itemId"`
}

func (r *searchResponse) items() []models.Item {
	items := make([]models.Item, 0, len(r.ItemSummaries))
	for i := range r.ItemSummaries {
		s := &r.ItemSummaries[i]
		it := models.Item{
			Title:  s.Title,
			WebURL: s.ItemWebURL,
			ItemID: s.ItemID,
		}
		if s.Price != nil {
			it.Price = &models.Price{Value: string(s.Price.Value), Currency: s.Price.Currency}
		}
		if s.Image != nil && s.Image.ImageURL != "" {
			it.Image = &models.Image{ImageURL: s.Image.ImageURL}
		}
		items = append(items, it)
	}
	return items
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Searcher = (*EbayClient)(nil)
