// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package similarity

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero left", []float32{0, 0, 0}, []float32{1, 2, 3}, 0},
		{"zero right", []float32{1, 2, 3}, []float32{0, 0, 0}, 0},
		{"both empty", []float32{}, []float32{}, 0},
		{"45 degrees", []float32{1, 0}, []float32{1, 1}, 1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Cosine() error = %v", err)
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	t.Parallel()

	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestCosineSymmetric(t *testing.T) {
	t.Parallel()

	vectors := [][]float32{
		{0.1, -0.4, 0.9},
		{3, 3, 3},
		{-1, 0.5, 0},
		{0, 0, 0},
	}

	for i := range vectors {
		for j := range vectors {
			ab, _ := Cosine(vectors[i], vectors[j])
			ba, _ := Cosine(vectors[j], vectors[i])
			if ab != ba {
				t.Errorf("Cosine(%d,%d) = %v but Cosine(%d,%d) = %v", i, j, ab, j, i, ba)
			}
			if ab < -1 || ab > 1 {
				t.Errorf("Cosine(%d,%d) = %v outside [-1, 1]", i, j, ab)
			}
		}
	}
}
