// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package config loads Outfitter configuration with Koanf v2.
//
// Sources are layered, later layers winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: CONFIG_PATH, else ./config.yaml, ./config.yml,
//     /etc/outfitter/config.yaml
//  3. Environment variables, through an explicit name mapping. Variables
//     that are not mapped are ignored.
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	embedding:
//	  url: http://clip:8000/embed
//	  cache_dir: /data/embeddings
//	classifier:
//	  provider: gemini
//	search:
//	  access_token: ${EBAY_ACCESS_TOKEN}
//	outfit:
//	  max_outfits: 8
//	  beam_width: 40
//
// Secrets (API keys, tokens, the JWT secret) are best supplied through the
// environment: EMBEDDING_API_KEY, GEMINI_API_KEY, EBAY_ACCESS_TOKEN,
// EBAY_VERIFY_TOKEN, JWT_SECRET.
package config
