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

func scoreCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the score breakdown of one outfit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			of, err := loadOutfit(path)
			if err != nil {
				return err
			}
			if err := of.Preferences.Validate(); err != nil {
				return err
			}
			var attrs models.AttributeGetter
			if len(of.Attributes) > 0 {
				attrs = models.AttributeIndex(of.Attributes).Get
			}
			return writeJSON(cmd.OutOrStdout(), outfit.Breakdown(of.Picks, of.Preferences, of.ledger(), attrs))
		},
	}
	cmd.Flags().StringVarP(&path, "outfit", "o", "", "outfit file with picks and optional prior usage (YAML or JSON, - for stdin)")
	_ = cmd.MarkFlagRequired("outfit")
	return cmd
}
