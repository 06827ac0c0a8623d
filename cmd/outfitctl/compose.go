// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/outfit"
)

type composeOptions struct {
	pools      string
	budget     float64
	palette    string
	vibe       string
	maxOutfits int
	topK       int
	beam       int
	allowReuse bool
}

func composeCmd() *cobra.Command {
	var opts composeOptions
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose outfits from a pools file",
		Long: `Compose outfits from category pools and print them as JSON.

The file maps slots (top, bottom, jacket, footwear, accessory) to items,
either directly or under a "pools" key next to optional "preferences" and
"attributes". Flags override preferences from the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pools, "pools", "p", "", "pools file (YAML or JSON, - for stdin)")
	cmd.Flags().Float64Var(&opts.budget, "budget", 0, "maximum outfit price, 0 for none")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "target palette (neutrals, brights, earth, pastels)")
	cmd.Flags().StringVar(&opts.vibe, "vibe", "", "target vibe (formal, casual, athletic)")
	cmd.Flags().IntVarP(&opts.maxOutfits, "max", "n", 0, "number of outfits")
	cmd.Flags().IntVar(&opts.topK, "top-k", 0, "candidates per slot")
	cmd.Flags().IntVar(&opts.beam, "beam", 0, "beam width")
	cmd.Flags().BoolVar(&opts.allowReuse, "allow-reuse", false, "let an item appear in several outfits")
	_ = cmd.MarkFlagRequired("pools")

	return cmd
}

func runCompose(cmd *cobra.Command, opts *composeOptions) error {
	pf, err := loadPools(opts.pools)
	if err != nil {
		return err
	}

	prefs := pf.Preferences
	flags := cmd.Flags()
	if flags.Changed("budget") {
		prefs.BudgetMax = opts.budget
	}
	if flags.Changed("palette") {
		prefs.TargetPalette = models.Palette(opts.palette)
	}
	if flags.Changed("vibe") {
		prefs.TargetVibe = models.Vibe(opts.vibe)
	}
	if flags.Changed("max") {
		prefs.MaxOutfits = opts.maxOutfits
	}
	if flags.Changed("top-k") {
		prefs.TopKPerCategory = opts.topK
	}
	if flags.Changed("beam") {
		prefs.BeamWidth = opts.beam
	}
	if flags.Changed("allow-reuse") {
		prefs.AllowReuse = opts.allowReuse
	}

	var attrs models.AttributeGetter
	if len(pf.Attributes) > 0 {
		attrs = models.AttributeIndex(pf.Attributes).Get
	}

	outfits, err := outfit.GenerateOutfits(pf.Pools, prefs, attrs)
	if err != nil {
		return err
	}
	if outfits == nil {
		outfits = []models.OutfitSuggestion{}
	}
	return writeJSON(cmd.OutOrStdout(), outfits)
}
