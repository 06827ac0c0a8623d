// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package embedding

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrEmptySource is returned when a Source carries neither URL nor bytes.
	ErrEmptySource = errors.New("empty image source")

	// ErrUnsupportedImage is returned when the service rejects the image itself.
	ErrUnsupportedImage = errors.New("unsupported or unreadable image")

	// ErrDimension is returned when the service answers with an unexpected vector length.
	ErrDimension = errors.New("unexpected embedding dimension")
)

// Embedder produces an embedding for an image.
type Embedder interface {
	Embed(ctx context.Context, src Source) ([]float32, error)
}

// Source is an image given either by URL or by raw bytes.
type Source struct {
	URL      string
	Data     []byte
	MIMEType string
}

// URLSource returns a Source for a remote image.
func URLSource(url string) Source {
	return Source{URL: strings.TrimSpace(url)}
}

// BytesSource returns a Source for uploaded image bytes.
// An empty mimeType is sniffed from the data.
func BytesSource(data []byte, mimeType string) Source {
	if mimeType == "" && len(data) > 0 {
		mimeType = http.DetectContentType(data)
	}
	return Source{Data: data, MIMEType: mimeType}
}

// Empty reports whether the source carries no image.
func (s Source) Empty() bool {
	return s.URL == "" && len(s.Data) == 0
}

// Cacheable reports whether the source can be cached by URL.
func (s Source) Cacheable() bool {
	return s.URL != "" && len(s.Data) == 0
}

// Reference returns the value sent to the embedding service: the URL, or a
// base64 data URL for byte sources.
func (s Source) Reference() string {
	if len(s.Data) == 0 {
		return s.URL
	}
	mime := s.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(s.Data)
}

// String describes the source for logs without dumping image bytes.
func (s Source) String() string {
	if len(s.Data) > 0 {
		return "upload(" + s.MIMEType + ")"
	}
	return s.URL
}
