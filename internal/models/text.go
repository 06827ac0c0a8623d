// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldText case-folds s for case-insensitive substring matching.
// A new Caser is created per call because Casers are not safe for concurrent use.
func FoldText(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
