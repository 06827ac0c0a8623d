// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package outfit

import "github.com/tomtom215/outfitter/internal/models"

// Usage is how often an item has appeared in emitted outfits.
type Usage struct {
	Count    int         `json:"count" yaml:"count"`
	LastSlot models.Slot `json:"lastSlot" yaml:"lastSlot"`
}

// UsageLedger tracks item usage across the outfits of one generation run.
// It is not safe for concurrent use.
type UsageLedger struct {
	entries map[string]Usage
}

// NewUsageLedger returns an empty ledger.
func NewUsageLedger() *UsageLedger {
	return &UsageLedger{entries: make(map[string]Usage)}
}

// Count returns the prior appearances of key. A nil ledger counts nothing.
func (l *UsageLedger) Count(key string) int {
	if l == nil {
		return 0
	}
	return l.entries[key].Count
}

// Get returns the usage entry for key.
func (l *UsageLedger) Get(key string) (Usage, bool) {
	if l == nil {
		return Usage{}, false
	}
	u, ok := l.entries[key]
	return u, ok
}

// Record counts one appearance of every pick. Recording into a nil ledger
// does nothing.
func (l *UsageLedger) Record(picks []Pick) {
	if l == nil {
		return
	}
	if l.entries == nil {
		l.entries = make(map[string]Usage, len(picks))
	}
	for i := range picks {
		key := picks[i].Item.Key()
		u := l.entries[key]
		u.Count++
		u.LastSlot = picks[i].Slot
		l.entries[key] = u
	}
}

// Set overrides the usage of key, seeding the ledger with appearances from
// earlier sessions. Setting on a nil ledger does nothing.
func (l *UsageLedger) Set(key string, u Usage) {
	if l == nil {
		return
	}
	if l.entries == nil {
		l.entries = make(map[string]Usage)
	}
	l.entries[key] = u
}

// Len returns the number of distinct items recorded.
func (l *UsageLedger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
