// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/outfitter/internal/similarity"
)

func similarityCmd() *cobra.Command {
	var a, b string
	cmd := &cobra.Command{
		Use:     "similarity",
		Short:   "Print the cosine similarity of two vectors",
		Example: "  outfitctl similarity --a 1,0 --b 0.6,0.8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			va, err := parseVector(a)
			if err != nil {
				return fmt.Errorf("--a: %w", err)
			}
			vb, err := parseVector(b)
			if err != nil {
				return fmt.Errorf("--b: %w", err)
			}
			score, err := similarity.Cosine(va, vb)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", score)
			return err
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "first vector, comma separated")
	cmd.Flags().StringVar(&b, "b", "", "second vector, comma separated")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func parseVector(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	vec := make([]float32, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		vec = append(vec, float32(v))
	}
	return vec, nil
}
