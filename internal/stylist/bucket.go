// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package stylist

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/outfitter/internal/classify"
	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/pools"
)

// classification is the per-item outcome of the fan-out.
type classification struct {
	result classify.Result
	ok     bool
}

// ClassifyAndBucket classifies the first ClassifyMax items and builds pools.
// Classified items keep their order; a result without a slot falls back to
// title keywords. Items never classified only serve as backfill for thin
// slots. The returned index carries the classifier's palette and vibe.
func (s *Stylist) ClassifyAndBucket(ctx context.Context, items []models.Item) (models.CategoryPools, models.AttributeIndex, error) {
	attrs := make(models.AttributeIndex)

	if s.classifier == nil {
		classified := make([]pools.Classified, len(items))
		for i := range items {
			classified[i] = pools.Classified{Item: items[i]}
		}
		return s.builder.Build(classified), attrs, nil
	}

	n := min(len(items), s.cfg.ClassifyMax)
	outcomes, err := s.classifyAll(ctx, items[:n])
	if err != nil {
		return nil, nil, err
	}

	var classified []pools.Classified
	var rest []models.Item
	for i := range items {
		if i >= n || !outcomes[i].ok {
			rest = append(rest, items[i])
			continue
		}
		res := outcomes[i].result
		it := items[i]
		it.Palette, it.Vibe = res.Palette, res.Vibe
		attrs[it.Key()] = res.Attributes()
		classified = append(classified, pools.Classified{Item: it, Slot: res.Slot})
	}

	categorized := s.builder.Build(classified)
	added := s.builder.Backfill(categorized, rest)

	s.logger.Debug().
		Int("classified", len(classified)).
		Int("unclassified", len(rest)).
		Int("backfilled", added).
		Msg("items bucketed")
	return categorized, attrs, nil
}

func (s *Stylist) classifyAll(ctx context.Context, items []models.Item) ([]classification, error) {
	outcomes := make([]classification, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ClassifyConcurrency)
	for i := range items {
		url := items[i].ImageURL()
		if url == "" {
			continue
		}
		title := items[i].Title
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, s.cfg.ClassifyTimeout)
			defer cancel()

			res, err := s.classifier.Classify(cctx, classify.Request{ImageURL: url, Title: title})
			if err != nil {
				if !errors.Is(err, classify.ErrNoClassification) {
					s.logger.Debug().Err(err).Str("url", url).Msg("classification failed")
				}
				return nil
			}
			outcomes[i] = classification{result: res, ok: true}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classification canceled: %w", err)
	}
	return outcomes, nil
}
