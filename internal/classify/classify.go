// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package classify

import (
	"context"
	"errors"

	"github.com/tomtom215/outfitter/internal/models"
)

// ErrNoClassification is returned when the model output carries no usable label.
var ErrNoClassification = errors.New("no classification in model output")

// Request describes one item to classify. Image bytes take precedence over ImageURL.
type Request struct {
	ImageURL string `json:"imageUrl" validate:"required_without=Image,omitempty,url"`
	Image    []byte `json:"-"`
	MIMEType string `json:"-"`
	Title    string `json:"title" validate:"max=500"`
}

// Result holds the labels found for an item. Any field may be empty.
type Result struct {
	Slot    models.Slot    `json:"category,omitempty"`
	Palette models.Palette `json:"colorCategory,omitempty"`
	Vibe    models.Vibe    `json:"formality,omitempty"`
}

// Empty reports whether no label was found.
func (r Result) Empty() bool {
	return r.Slot == "" && r.Palette == "" && r.Vibe == ""
}

// Attributes returns the aesthetic labels.
func (r Result) Attributes() models.Attributes {
	return models.Attributes{Palette: r.Palette, Vibe: r.Vibe}
}

// Classifier labels an item image.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Result, error)
}
