// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/tomtom215/outfitter/internal/breaker"
	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/metrics"
)

const (
	maxImageBytes = 8 << 20

	systemPrompt = `You are a fashion classifier.
Return a short JSON object with keys: colorCategory (one of: neutrals, brights, earth, pastels),
formality (one of: formal, casual, athletic), and category (one of: top, bottom, jacket, footwear, accessory).
Use both the image and the provided title text for hints. If uncertain, make your best guess.

Example:
{"colorCategory":"neutrals","formality":"casual","category":"top"}`

	keywordPrompt = `You are a fashion stylist. List 3-5 fashion keywords (e.g. leather jacket, white sneakers, oversized hoodie)
for the main piece of clothing visible in the image. Answer with a comma-separated list of plain words, no special characters.
The first keyword must be the category of the item, one of: top, bottom, footwear, jacket, accessory.`
)

// ErrImageFetch marks failures to download an image for the model.
var ErrImageFetch = errors.New("image fetch failed")

// GeminiConfig configures the Gemini classifier.
type GeminiConfig struct {
	// APIKey authenticates against the Gemini API.
	APIKey string

	// Model is the Gemini model name.
	// Default: gemini-2.5-flash.
	Model string

	// Temperature for generation.
	// Default: 0.2.
	Temperature float32

	// MaxOutputTokens bounds the answer.
	// Default: 120.
	MaxOutputTokens int32

	// RequestsPerSecond limits model calls. 0 disables limiting.
	RequestsPerSecond float64

	// Breaker configures the circuit breaker.
	Breaker breaker.Settings
}

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini classifies item images with a Gemini vision model.
type Gemini struct {
	cfg     GeminiConfig
	models  contentGenerator
	http    *http.Client
	limiter *rate.Limiter
	breaker *breaker.Breaker[string]
	logger  zerolog.Logger
}

// NewGemini creates a Gemini classifier. httpClient downloads item images;
// nil uses http.DefaultClient.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGemini(ctx context.Context, cfg GeminiConfig, httpClient *http.Client, logger zerolog.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGemini(cfg, client.Models, httpClient, logger), nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newGemini(cfg GeminiConfig, models contentGenerator, httpClient *http.Client, logger zerolog.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.2
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 120
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	bs := cfg.Breaker
	bs.Ignore = func(err error) bool {
		return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	}

	return &Gemini{
		cfg:     cfg,
		models:  models,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
		breaker: breaker.New[string]("classifier", bs),
		logger:  logger.With().Str("component", "classifier").Logger(),
	}
}

// Classify implements Classifier.
func (g *Gemini) Classify(ctx context.Context, req Request) (Result, error) {
	data, mime := req.Image, req.MIMEType
	if len(data) == 0 {
		if req.ImageURL == "" {
			metrics.RecordClassification("skipped")
			return Result{}, fmt.Errorf("%w: no image", ErrNoClassification)
		}
		var err error
		data, mime, err = g.fetchImage(ctx, req.ImageURL)
		if err != nil {
			metrics.RecordClassification("error")
			return Result{}, err
		}
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("classifier rate limit: %w", err)
	}

	start := time.Now()
	text, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, data, mime, "Title: "+req.Title, systemPrompt, true)
	})
	metrics.RecordExternalRequest("classifier", time.Since(start), err)
	if err != nil {
		metrics.RecordClassification("error")
		return Result{}, err
	}

	res := ParseModelText(text)
	if res.Empty() {
		metrics.RecordClassification("unparsed")
		g.logger.Debug().Str("title", req.Title).Str("text", text).Msg("unparseable classifier output")
		return Result{}, ErrNoClassification
	}
	metrics.RecordClassification("ok")
	return res, nil
}

// Keywords implements KeywordExtractor.
func (g *Gemini) Keywords(ctx context.Context, src embedding.Source) ([]string, error) {
	if src.Empty() {
		return nil, embedding.ErrEmptySource
	}
	data, mime := src.Data, src.MIMEType
	if len(data) == 0 {
		var err error
		data, mime, err = g.fetchImage(ctx, src.URL)
		if err != nil {
			return nil, err
		}
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("classifier rate limit: %w", err)
	}

	start := time.Now()
	text, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, data, mime, "", keywordPrompt, false)
	})
	metrics.RecordExternalRequest("keywords", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	keywords := ParseKeywords(text)
	if len(keywords) == 0 {
		g.logger.Debug().Str("text", text).Msg("no keywords in model output")
		return nil, ErrNoKeywords
	}
	return keywords, nil
}

// generate sends the image, plus hint when set, under the given system prompt.
func (g *Gemini) generate(ctx context.Context, data []byte, mime, hint, system string, jsonOut bool) (string, error) {
	parts := []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}}
	if hint != "" {
		parts = append(parts, &genai.Part{Text: hint})
	}
	temp := g.cfg.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: g.cfg.MaxOutputTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}
	if jsonOut {
		cfg.ResponseMIMEType = "application/json"
	}
	result, err := g.models.GenerateContent(ctx, g.cfg.Model, []*genai.Content{{Parts: parts}}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt: %s %s", result.PromptFeedback.BlockReason, result.PromptFeedback.BlockReasonMessage)
	}
	return result.Text(), nil
}

func (g *Gemini) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: status %d", ErrImageFetch, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageFetch, err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("%w: image exceeds %d bytes", ErrImageFetch, maxImageBytes)
	}

	mime := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}

var (
	_ Classifier       = (*Gemini)(nil)
	_ KeywordExtractor = (*Gemini)(nil)
)
