// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package docs registers the Outfitter OpenAPI document with swag so that
// /swagger/ can serve it. Regenerate with `swag init -g cmd/server/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/outfitter/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Service health",
                "responses": {"200": {"description": "Health status", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/health/live": {
            "get": {
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Alive"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "Ready"}}
            }
        },
        "/rerank": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Outfits"],
                "summary": "Rerank items by visual similarity to a reference image",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.RerankRequest"}}],
                "responses": {
                    "200": {"description": "Reranked items with diagnostics", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Embedding service failed", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Reranker not configured", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "504": {"description": "Timed out", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/outfits": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Outfits"],
                "summary": "Compose outfits from category pools",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.OutfitsRequest"}}],
                "responses": {
                    "200": {"description": "Ranked outfits", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid pools or preferences", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/pools": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Outfits"],
                "summary": "Group classified items into category pools",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.PoolsRequest"}}],
                "responses": {
                    "200": {"description": "Pools with per-slot counts", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/classify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Outfits"],
                "summary": "Classify one item image",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.ClassifyRequest"}}],
                "responses": {
                    "200": {"description": "Classification, or classified=false", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Classifier failed", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Classifier not configured", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/keywords": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Outfits"],
                "summary": "Extract search keywords from an image",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.KeywordsRequest"}}],
                "responses": {
                    "200": {"description": "Keywords", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Missing or invalid image", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Model failed or named no keywords", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Keyword extraction not configured", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Marketplace"],
                "summary": "Search marketplace listings",
                "parameters": [
                    {"type": "string", "description": "Search query", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "description": "Maximum results (1-200)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Listings", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Missing query or bad limit", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Marketplace failed", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Search not configured", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/style": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Outfits"],
                "summary": "Search, rerank, classify and compose in one call",
                "description": "Searches the query and keywords. With neither, keywords are extracted from the reference image.",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/api.StyleRequest"}}],
                "responses": {
                    "200": {"description": "Outfits with the intermediate pools", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "502": {"description": "Upstream failed", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Search not configured", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/ebay/account-deletion": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Marketplace"],
                "summary": "Answer the eBay endpoint validation challenge",
                "parameters": [{"type": "string", "name": "challenge_code", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "challengeResponse digest"},
                    "400": {"description": "Missing challenge code"},
                    "503": {"description": "Verification token not configured"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "tags": ["Marketplace"],
                "summary": "Receive an eBay account-deletion notification",
                "responses": {"204": {"description": "Acknowledged"}, "400": {"description": "Malformed notification"}}
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "metadata": {"type": "object"}
            }
        },
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "api.ImageInput": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "data": {"type": "string", "description": "base64 image bytes"},
                "mimeType": {"type": "string"}
            }
        },
        "models.Item": {
            "type": "object",
            "properties": {
                "itemId": {"type": "string"},
                "title": {"type": "string"},
                "image": {"type": "object", "properties": {"imageUrl": {"type": "string"}}},
                "webUrl": {"type": "string"},
                "price": {"type": "object", "properties": {"value": {"type": "string"}, "currency": {"type": "string"}}},
                "clipSimilarity": {"type": "number"}
            }
        },
        "api.RerankRequest": {
            "type": "object",
            "required": ["referenceImage"],
            "properties": {
                "referenceImage": {"$ref": "#/definitions/api.ImageInput"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}}
            }
        },
        "outfit.Preferences": {
            "type": "object",
            "properties": {
                "targetPalette": {"type": "string", "enum": ["neutrals", "brights", "earth", "pastels"]},
                "targetVibe": {"type": "string", "enum": ["formal", "casual", "athletic"]},
                "budgetMax": {"type": "number"},
                "maxOutfits": {"type": "integer"},
                "topKPerCategory": {"type": "integer"},
                "beamWidth": {"type": "integer"},
                "allowReuse": {"type": "boolean"}
            }
        },
        "api.OutfitsRequest": {
            "type": "object",
            "required": ["pools"],
            "properties": {
                "pools": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}}},
                "preferences": {"$ref": "#/definitions/outfit.Preferences"},
                "attributes": {"type": "object", "additionalProperties": {"type": "object"}}
            }
        },
        "api.PoolsRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "unclassified": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}}
            }
        },
        "api.ClassifyRequest": {
            "type": "object",
            "required": ["imageUrl"],
            "properties": {
                "imageUrl": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "api.KeywordsRequest": {
            "type": "object",
            "required": ["image"],
            "properties": {
                "image": {"$ref": "#/definitions/api.ImageInput"}
            }
        },
        "api.StyleRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "keywords": {"type": "array", "items": {"type": "string"}},
                "referenceImage": {"$ref": "#/definitions/api.ImageInput"},
                "preferences": {"$ref": "#/definitions/outfit.Preferences"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT bearer token: \"Bearer <token>\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Outfitter API",
	Description:      "Visual reranking of marketplace listings and outfit composition.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
