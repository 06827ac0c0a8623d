// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/outfitter/internal/models"
	"github.com/tomtom215/outfitter/internal/outfit"
)

// poolsFile is the compose input. A file holding only a slot map is
// accepted too.
type poolsFile struct {
	Pools       models.CategoryPools         `yaml:"pools"`
	Preferences outfit.Preferences           `yaml:"preferences"`
	Attributes  map[string]models.Attributes `yaml:"attributes"`
}

// outfitFile is the score input. Usage holds prior appearances by item key
// and feeds the variety sub-score.
type outfitFile struct {
	Picks       []outfit.Pick                `yaml:"picks"`
	Preferences outfit.Preferences           `yaml:"preferences"`
	Attributes  map[string]models.Attributes `yaml:"attributes"`
	Usage       map[string]outfit.Usage      `yaml:"usage"`
}

// ledger seeds a usage ledger from the file. It is nil without usage.
func (of *outfitFile) ledger() *outfit.UsageLedger {
	if len(of.Usage) == 0 {
		return nil
	}
	l := outfit.NewUsageLedger()
	for key, u := range of.Usage {
		l.Set(key, u)
	}
	return l
}

// readFile reads path, or stdin for "-". yaml.v3 parses JSON documents as well.
func readFile(path string, dst interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadPools(path string) (*poolsFile, error) {
	var pf poolsFile
	if err := readFile(path, &pf); err != nil {
		return nil, err
	}
	if len(pf.Pools) == 0 {
		var bare models.CategoryPools
		if err := readFile(path, &bare); err != nil {
			return nil, err
		}
		pf.Pools = bare
	}
	if pf.Pools.Total() == 0 {
		return nil, errors.New("no items in pools")
	}
	for slot := range pf.Pools {
		if !slot.Valid() {
			return nil, fmt.Errorf("unknown slot %q", slot)
		}
	}
	return &pf, nil
}

func loadOutfit(path string) (*outfitFile, error) {
	var of outfitFile
	if err := readFile(path, &of); err != nil {
		return nil, err
	}
	if len(of.Picks) == 0 {
		return nil, errors.New("outfit has no picks")
	}
	for _, p := range of.Picks {
		if !p.Slot.Valid() {
			return nil, fmt.Errorf("unknown slot %q", p.Slot)
		}
	}
	return &of, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
