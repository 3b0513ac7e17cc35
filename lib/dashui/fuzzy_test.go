// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"testing"

	"github.com/junegunn/fzf/src/util"
)

func TestFuzzyMatchBasic(t *testing.T) {
	slab := util.MakeSlab(100*1024, 2048)

	result := FuzzyMatch("Widget Sprocket", []rune("wsp"), slab)
	if result.Score <= 0 {
		t.Fatalf("expected positive score for subsequence match, got %d", result.Score)
	}
	if len(result.Positions) == 0 {
		t.Fatal("expected match positions")
	}

	miss := FuzzyMatch("Widget Sprocket", []rune("xyz"), slab)
	if miss.Score != 0 {
		t.Fatalf("expected zero score for non-match, got %d", miss.Score)
	}
	if miss.Positions != nil {
		t.Fatalf("expected nil positions for non-match, got %v", miss.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	slab := util.MakeSlab(100*1024, 2048)

	lower := FuzzyMatch("hex bolt m8", []rune("BOLT"), slab)
	if lower.Score <= 0 {
		t.Fatal("uppercase pattern should match lowercase text")
	}
	upper := FuzzyMatch("HEX BOLT M8", []rune("bolt"), slab)
	if upper.Score <= 0 {
		t.Fatal("lowercase pattern should match uppercase text")
	}
}

func TestFuzzyMatchPrefersTighterMatch(t *testing.T) {
	slab := util.MakeSlab(100*1024, 2048)

	tight := FuzzyMatch("order", []rune("ord"), slab)
	loose := FuzzyMatch("organic powder", []rune("ord"), slab)
	if tight.Score <= loose.Score {
		t.Fatalf("contiguous prefix should outscore scattered match: %d vs %d",
			tight.Score, loose.Score)
	}
}
