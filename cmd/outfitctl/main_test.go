// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/outfit"
	"github.com/tomtom215/outfitter/internal/similarity"
)

const poolsYAML = `pools:
  top:
    - {title: White Oxford Shirt, itemId: t1, price: {value: "40", currency: USD}}
    - {title: Grey Tee, itemId: t2, price: {value: "15", currency: USD}}
  bottom:
    - {title: Navy Chinos, itemId: b1, price: {value: "50", currency: USD}}
  footwear:
    - {title: Brown Loafers, itemId: f1, price: {value: "90", currency: USD}}
preferences:
  maxOutfits: 5
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestComposeCommand(t *testing.T) {
	path := writeTemp(t, "pools.yaml", poolsYAML)

	out, err := execute(t, "compose", "--pools", path)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	var outfits []models.OutfitSuggestion
	if err := json.Unmarshal([]byte(out), &outfits); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	// Without reuse the single bottom and footwear allow one outfit.
	if len(outfits) != 1 {
		t.Fatalf("got %d outfits, want 1", len(outfits))
	}
	if len(outfits[0].Items) != 3 {
		t.Errorf("outfit has %d items, want 3", len(outfits[0].Items))
	}

	out, err = execute(t, "compose", "--pools", path, "--allow-reuse", "--max", "2")
	if err != nil {
		t.Fatalf("compose --allow-reuse: %v", err)
	}
	outfits = nil
	if err := json.Unmarshal([]byte(out), &outfits); err != nil {
		t.Fatal(err)
	}
	if len(outfits) != 2 {
		t.Errorf("got %d outfits with reuse, want 2", len(outfits))
	}
}

func TestComposeCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown slot",
			content: "pools:\n  hat:\n    - {title: Cap}\n",
			wantErr: "unknown slot",
		},
		{
			name:    "empty pools",
			content: "pools:\n  top: []\n",
			wantErr: "no items",
		},
		{
			name:    "bad palette flag",
			content: poolsYAML,
			args:    []string{"--palette", "neon"},
			wantErr: "unknown palette",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "pools.yaml", tt.content)
			args := append([]string{"compose", "--pools", path}, tt.args...)
			_, err := execute(t, args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestComposeAcceptsBareJSONPools(t *testing.T) {
	path := writeTemp(t, "pools.json", `{
  "top": [{"title": "Tee", "itemId": "t1"}],
  "bottom": [{"title": "Jeans", "itemId": "b1"}],
  "footwear": [{"title": "Sneakers", "itemId": "f1"}]
}`)

	out, err := execute(t, "compose", "-p", path)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(out, `"Look #1"`) {
		t.Errorf("output missing default outfit name:\n%s", out)
	}
}

func TestScoreCommand(t *testing.T) {
	path := writeTemp(t, "outfit.yaml", `picks:
  - slot: top
    item: {title: White Shirt, itemId: t1, price: {value: "40", currency: USD}}
  - slot: bottom
    item: {title: Navy Chinos, itemId: b1, price: {value: "60", currency: USD}}
  - slot: footwear
    item: {title: Loafers, itemId: f1}
preferences:
  budgetMax: 200
`)

	out, err := execute(t, "score", "--outfit", path)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var b outfit.ScoreBreakdown
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if b.TotalPrice != 100 {
		t.Errorf("totalPrice = %v, want 100", b.TotalPrice)
	}
	if b.Total <= 0 {
		t.Errorf("total = %v, want > 0", b.Total)
	}
	if b.Variety != 1 {
		t.Errorf("variety = %v, want 1 without prior usage", b.Variety)
	}
}

func TestScoreCommandReadsUsage(t *testing.T) {
	path := writeTemp(t, "outfit.yaml", `picks:
  - slot: top
    item: {title: White Shirt, itemId: t1}
  - slot: bottom
    item: {title: Navy Chinos, itemId: b1}
  - slot: footwear
    item: {title: Loafers, itemId: f1}
usage:
  t1: {count: 2, lastSlot: top}
  b1: {count: 1, lastSlot: bottom}
`)

	out, err := execute(t, "score", "--outfit", path)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var b outfit.ScoreBreakdown
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if b.Variety >= 1 {
		t.Errorf("variety = %v, want below 1 for reused items", b.Variety)
	}
}

func TestSimilarityCommand(t *testing.T) {
	out, err := execute(t, "similarity", "--a", "1,0", "--b", "1, 0")
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	if strings.TrimSpace(out) != "1.000000" {
		t.Errorf("output = %q, want 1.000000", out)
	}

	_, err = execute(t, "similarity", "--a", "1,0", "--b", "1,0,0")
	if !errors.Is(err, similarity.ErrDimensionMismatch) {
		t.Errorf("error = %v, want dimension mismatch", err)
	}

	_, err = execute(t, "similarity", "--a", "1,x", "--b", "1,0")
	if err == nil {
		t.Error("expected parse error")
	}
}
