// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/outfitter/internal/models"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Embedding, classification and search collaborators
// - Rerank quality
// - Outfit composition

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Collaborator Metrics
	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Total number of requests to external services",
		},
		[]string{"service", "outcome"}, // outcome: "success", "failure"
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "External service request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"service"},
	)

	EmbeddingCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_cache_lookups_total",
			Help: "Embedding cache lookups by tier and result",
		},
		[]string{"tier", "result"}, // result: "hit", "miss"
	)

	EmbeddingCacheGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_cache_gc_runs_total",
			Help: "Persistent embedding cache value-log GC runs",
		},
		[]string{"result"}, // result: "rewritten", "noop", "error"
	)

	ClassificationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_results_total",
			Help: "Item classification outcomes",
		},
		[]string{"outcome"}, // outcome: "classified", "keyword_fallback", "failed", "skipped"
	)

	// Rerank Metrics
	RerankCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rerank_candidates_total",
			Help: "Rerank candidates by outcome",
		},
		[]string{"outcome"}, // outcome: "embedded", "failed", "missing_image"
	)

	RerankEffectiveness = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rerank_effectiveness_percent",
			Help:    "Share of candidates whose position changed after rerank",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	RerankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rerank_duration_seconds",
			Help:    "Rerank duration in seconds, including embedding",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
	)

	// Composition Metrics
	PoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "category_pool_size",
			Help:    "Number of candidates per slot when pools are built",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 40},
		},
		[]string{"slot"},
	)

	OutfitsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outfits_generated_total",
			Help: "Total number of outfit suggestions emitted",
		},
	)

	OutfitScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_score",
			Help:    "Score of emitted outfit suggestions",
			Buckets: prometheus.LinearBuckets(0, 0.5, 14),
		},
	)

	OutfitGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_generation_duration_seconds",
			Help:    "Duration of one outfit generation run",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordExternalRequest records one call to an external service.
func RecordExternalRequest(service string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ExternalRequests.WithLabelValues(service, outcome).Inc()
	ExternalRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordEmbeddingCache records a cache lookup on the given tier.
func RecordEmbeddingCache(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	EmbeddingCacheLookups.WithLabelValues(tier, result).Inc()
}

// RecordEmbeddingCacheGC records a value-log GC pass.
func RecordEmbeddingCacheGC(result string) {
	EmbeddingCacheGCRuns.WithLabelValues(result).Inc()
}

// RecordClassification records one classification outcome.
func RecordClassification(outcome string) {
	ClassificationResults.WithLabelValues(outcome).Inc()
}

// RecordRerank records the outcome of one rerank.
//
//nolint:gocritic // hugeParam: diagnostics are small and read-only
func RecordRerank(debug models.RerankDiagnostics, duration time.Duration) {
	RerankCandidates.WithLabelValues("embedded").Add(float64(debug.ValidEmbeddings))
	RerankCandidates.WithLabelValues("failed").Add(float64(len(debug.FailedURLs) - debug.MissingImages))
	RerankCandidates.WithLabelValues("missing_image").Add(float64(debug.MissingImages))
	RerankEffectiveness.Observe(debug.Effectiveness)
	RerankDuration.Observe(duration.Seconds())
}

// RecordPoolSizes records the size of every slot pool.
func RecordPoolSizes(pools models.CategoryPools) {
	for _, slot := range models.AllSlots {
		PoolSize.WithLabelValues(string(slot)).Observe(float64(len(pools[slot])))
	}
}

// RecordOutfitGeneration records a completed composition run.
func RecordOutfitGeneration(outfits []models.OutfitSuggestion, duration time.Duration) {
	OutfitsGenerated.Add(float64(len(outfits)))
	for i := range outfits {
		OutfitScore.Observe(outfits[i].Score)
	}
	OutfitGenerationDuration.Observe(duration.Seconds())
}
