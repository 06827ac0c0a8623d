// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

// Package textmatch finds many keywords in short texts in a single pass.
package textmatch

import "strings"

// Automaton is an Aho-Corasick automaton over lower-cased patterns.
// It finds every pattern occurring in a text in O(n + m + z) time, where n is
// the text length, m the total pattern length and z the number of matches.
//
// An Automaton is immutable once built and safe for concurrent use.
//
// Example:
//
//	ac := textmatch.New([]textmatch.Pattern{
//		{Text: "boot", Rank: 0},
//		{Text: "jacket", Rank: 1},
//	})
//	m, ok := ac.Best("leather jacket with boot cut")
//	// m.Text == "boot", m.Rank == 0
type Automaton struct {
	root     *node
	patterns []Pattern
}

type node struct {
	children map[rune]*node
	failure  *node
	output   []int // indices into patterns ending here, failure outputs merged
}

// Pattern is a keyword and its rank. Lower ranks win in Best.
type Pattern struct {
	Text string
	Rank int
}

// Match is one occurrence of a pattern.
type Match struct {
	Text     string
	Rank     int
	Position int // byte offset of the match start in the searched text
}

// New builds an automaton. Patterns are lower-cased; empty ones are skipped.
func New(patterns []Pattern) *Automaton {
	ac := &Automaton{root: newNode()}
	for _, p := range patterns {
		if p.Text == "" {
			continue
		}
		p.Text = strings.ToLower(p.Text)
		ac.insert(len(ac.patterns), p.Text)
		ac.patterns = append(ac.patterns, p)
	}
	ac.link()
	return ac
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

func (ac *Automaton) insert(index int, text string) {
	n := ac.root
	for _, ch := range text {
		next := n.children[ch]
		if next == nil {
			next = newNode()
			n.children[ch] = next
		}
		n = next
	}
	n.output = append(n.output, index)
}

// link builds failure links breadth first.
func (ac *Automaton) link() {
	queue := make([]*node, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// walk feeds text through the automaton and calls visit for every match.
func (ac *Automaton) walk(text string, visit func(Match)) {
	if len(ac.patterns) == 0 {
		return
	}
	n := ac.root
	for i, ch := range text {
		for n != nil && n.children[ch] == nil {
			n = n.failure
		}
		if n == nil {
			n = ac.root
			continue
		}
		n = n.children[ch]

		// i is the start of the last rune; the match ends after it.
		end := i + len(string(ch))
		for _, idx := range n.output {
			p := ac.patterns[idx]
			visit(Match{Text: p.Text, Rank: p.Rank, Position: end - len(p.Text)})
		}
	}
}

// FindAll returns every match in text, ordered by end position.
// text should already be lower-cased or case-folded.
func (ac *Automaton) FindAll(text string) []Match {
	var matches []Match
	ac.walk(text, func(m Match) {
		matches = append(matches, m)
	})
	return matches
}

// Best returns the match with the lowest rank, the earliest one on ties.
func (ac *Automaton) Best(text string) (Match, bool) {
	var (
		best  Match
		found bool
	)
	ac.walk(text, func(m Match) {
		if !found || m.Rank < best.Rank || (m.Rank == best.Rank && m.Position < best.Position) {
			best, found = m, true
		}
	})
	return best, found
}

// Len returns the number of patterns.
func (ac *Automaton) Len() int {
	return len(ac.patterns)
}
