// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package metrics provides Prometheus instrumentation for Outfitter.

All collectors are registered with the default registry through promauto and
exposed by the HTTP server on /metrics.

Metric Families:

  - api_*: request counts, latency, in-flight requests, rate-limit rejections
  - external_*: calls to the embedding, classification and search services
  - embedding_cache_*: two-tier cache hit rates and persistent-tier GC
  - classification_results_total: classifier and keyword-fallback outcomes
  - rerank_*: candidate outcomes, effectiveness and duration
  - category_pool_size, outfit_*: composition inputs and outputs
  - circuit_breaker_*: breaker state for every outbound client

Record helpers keep label values consistent:

	metrics.RecordExternalRequest("embedding", time.Since(start), err)
	metrics.RecordRerank(result.Debug, time.Since(start))
*/
package metrics
