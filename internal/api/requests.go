// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/outfit"
	"github.com/tomtom215/outfitter/internal/pools"
	"github.com/tomtom215/outfitter/internal/validation"
)

// ImageInput is a reference image given by URL or as base64 bytes.
type ImageInput struct {
	URL      string `json:"url,omitempty" validate:"omitempty,http_url"`
	Data     string `json:"data,omitempty" validate:"omitempty,base64"`
	MIMEType string `json:"mimeType,omitempty" validate:"omitempty,max=100"`
}

// Source converts the input to an embedding source. A nil input is empty.
func (in *ImageInput) Source() (embedding.Source, error) {
	if in == nil {
		return embedding.Source{}, nil
	}
	if in.Data != "" {
		data, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return embedding.Source{}, fmt.Errorf("decode image data: %w", err)
		}
		return embedding.BytesSource(data, in.MIMEType), nil
	}
	return embedding.URLSource(in.URL), nil
}

// RerankRequest is the body of POST /rerank.
type RerankRequest struct {
	ReferenceImage *ImageInput   `json:"referenceImage" validate:"required"`
	Items          []models.Item `json:"items" validate:"max=500"`
}

// OutfitsRequest is the body of POST /outfits.
type OutfitsRequest struct {
	Pools       models.CategoryPools         `json:"pools" validate:"required,dive,keys,slot,endkeys,max=200"`
	Preferences outfit.Preferences           `json:"preferences"`
	Attributes  map[string]models.Attributes `json:"attributes,omitempty" validate:"max=2000"`
}

// PoolsRequest is the body of POST /pools. Unclassified items only fill
// thin slots.
type PoolsRequest struct {
	Items        []pools.Classified `json:"items" validate:"max=1000,dive"`
	Unclassified []models.Item      `json:"unclassified,omitempty" validate:"max=1000"`
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,http_url"`
	Title    string `json:"title,omitempty" validate:"max=500"`
}

// KeywordsRequest is the body of POST /keywords.
type KeywordsRequest struct {
	Image *ImageInput `json:"image" validate:"required"`
}

// StyleRequest is the body of POST /style.
type StyleRequest struct {
	Query          string             `json:"query,omitempty" validate:"max=200"`
	Keywords       []string           `json:"keywords,omitempty" validate:"max=10,dive,max=100"`
	ReferenceImage *ImageInput        `json:"referenceImage,omitempty"`
	Preferences    outfit.Preferences `json:"preferences"`
}

// errBodyTooLarge is returned by decodeJSON when MaxBytesReader trips.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSON reads a size-limited JSON body into dst and validates it.
// It writes the error response itself and reports whether to continue.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, errBodyTooLarge.Error())
		case errors.Is(err, io.EOF):
			rw.BadRequest("request body is required")
		default:
			rw.BadRequest("invalid JSON body: " + err.Error())
		}
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// mergePreferences fills unset request fields from the server defaults.
//
//nolint:gocritic // hugeParam
func mergePreferences(defaults, req outfit.Preferences) outfit.Preferences {
	if req.MaxOutfits == 0 {
		req.MaxOutfits = defaults.MaxOutfits
	}
	if req.TopKPerCategory == 0 {
		req.TopKPerCategory = defaults.TopKPerCategory
	}
	if req.BeamWidth == 0 {
		req.BeamWidth = defaults.BeamWidth
	}
	if req.BudgetMax == 0 {
		req.BudgetMax = defaults.BudgetMax
	}
	if req.TargetPalette == "" {
		req.TargetPalette = defaults.TargetPalette
	}
	if req.TargetVibe == "" {
		req.TargetVibe = defaults.TargetVibe
	}
	req.AllowReuse = req.AllowReuse || defaults.AllowReuse
	return req
}
