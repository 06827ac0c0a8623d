// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package classify

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/tomtom215/outfitter/internal/embedding"
	"github.com/tomtom215/outfitter/internal/models"
)

// ErrNoKeywords is returned when the model names no keywords for an image.
var ErrNoKeywords = errors.New("no keywords in model output")

// KeywordExtractor derives search keywords from an inspiration image. The
// first keyword is usually the slot of the pictured piece.
type KeywordExtractor interface {
	Keywords(ctx context.Context, src embedding.Source) ([]string, error)
}

var keywordSeparators = regexp.MustCompile(`[,\n\r*]+`)

// ParseKeywords splits model output on commas, line breaks and asterisks.
// Blank entries and case-insensitive repeats are dropped; order is kept.
func ParseKeywords(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range keywordSeparators.Split(text, -1) {
		k := strings.TrimSpace(part)
		if k == "" {
			continue
		}
		key := models.FoldText(k)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
	}
	return out
}
