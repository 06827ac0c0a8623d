// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

/*
Package main is the entry point for the Outfitter server.

Outfitter reranks marketplace listings by visual similarity to a reference
image, sorts them into clothing slots and composes complete outfits with a
beam search over those slots.

# Application Architecture

The server runs under Suture v4 supervision:

	RootSupervisor ("outfitter")
	├── CacheSupervisor ("cache-layer")
	│   └── Embedding cache GC (only with EMBEDDING_CACHE_DIR)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file, environment
 2. Logging: zerolog with JSON or console output
 3. Embedding client, ristretto and badger caches, reranker
 4. Gemini vision classifier (optional)
 5. eBay search client and stylist pipeline (optional)
 6. Authentication: JWT or none
 7. Chi router with CORS, rate limiting and Prometheus middleware
 8. Supervisor tree

# Configuration

Priority: environment variables > config file > defaults.

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	AUTH_MODE=none               # none or jwt
	JWT_SECRET=<32+ chars>       # required for jwt

	EMBEDDING_URL=http://clip:8000/embed
	EMBEDDING_CACHE_DIR=/data/embeddings

	CLASSIFIER_PROVIDER=gemini
	GEMINI_API_KEY=<key>

	EBAY_ACCESS_TOKEN=<token>
	EBAY_VERIFY_TOKEN=<token>
	EBAY_DELETION_ENDPOINT=https://example.com/api/v1/ebay/account-deletion

A service without its configuration is left out and its routes answer 503.
/outfits and /pools need nothing external.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP service drains
connections within HTTP_SHUTDOWN_TIMEOUT, the caches are closed, and any
service that failed to stop is reported.

# API Documentation

Swagger UI is served at /swagger/index.html and Prometheus metrics at
/metrics.
*/
package main
