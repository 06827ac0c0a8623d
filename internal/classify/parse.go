// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package classify

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/models"
)

var (
	labelSeparators = regexp.MustCompile(`[,\n\r|-]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// NormalizePalette maps loose color wording onto a palette.
func NormalizePalette(s string) models.Palette {
	t := models.FoldText(s)
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "neutral"):
		return models.PaletteNeutrals
	case strings.Contains(t, "bright"):
		return models.PaletteBrights
	case strings.Contains(t, "earth"):
		return models.PaletteEarth
	case strings.Contains(t, "pastel"):
		return models.PalettePastels
	}
	return ""
}

// NormalizeVibe maps loose formality wording onto a vibe.
func NormalizeVibe(s string) models.Vibe {
	t := models.FoldText(s)
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "formal"), strings.Contains(t, "dress"):
		return models.VibeFormal
	case strings.Contains(t, "athlet"):
		return models.VibeAthletic
	case strings.Contains(t, "casual"), strings.Contains(t, "street"), strings.Contains(t, "everyday"):
		return models.VibeCasual
	}
	return ""
}

// ParseModelText extracts labels from model output.
func ParseModelText(text string) Result {
	raw := stripCodeFence(strings.TrimSpace(text))

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		return parseObject(obj)
	}

	cleaned := whitespaceRun.ReplaceAllString(strings.ReplaceAll(raw, "*", " "), " ")
	var res Result
	for _, part := range labelSeparators.Split(cleaned, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if p := NormalizePalette(part); p != "" {
			res.Palette = p
			continue
		}
		if v := NormalizeVibe(part); v != "" {
			res.Vibe = v
			continue
		}
		if slot, ok := models.ParseSlot(part); ok {
			res.Slot = slot
		}
	}
	return res
}

func parseObject(obj map[string]any) Result {
	var res Result
	res.Palette = NormalizePalette(firstString(obj, "colorCategory", "palette", "color", "colors"))
	res.Vibe = NormalizeVibe(firstString(obj, "formality", "vibe", "style"))
	if slot, ok := models.ParseSlot(firstString(obj, "category")); ok {
		res.Slot = slot
	}
	return res
}

// firstString returns the first non-empty value among keys. Array values
// are joined with spaces.
func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case []any:
			parts := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, " ")
			}
		}
	}
	return ""
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
