// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of a fuzzy match: a relevance score
// (higher is better, zero means no match) and the rune positions in
// the text that matched, for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch scores pattern against text using fzf's V2 algorithm
// (Smith-Waterman style with affine gap penalties, as used by fzf
// itself). Matching is case-insensitive: both sides are lowercased
// here rather than relying on fzf's smart-case, so an all-caps SKU
// still matches a lowercase query.
//
// The slab is an optional scratch allocation reused across calls in a
// hot filter loop; pass nil for one-off matches.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 || text == "" {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = toLowerRune(character)
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = *positions
	}
	return match
}

func toLowerRune(character rune) rune {
	if character >= 'A' && character <= 'Z' {
		return character + ('a' - 'A')
	}
	return character
}
