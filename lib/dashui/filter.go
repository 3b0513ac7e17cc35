// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"
)

// FilterModel implements fzf-style fuzzy matching over the rows of
// the active table. The page chooses the base data set; the filter
// narrows it client-side without round-tripping to the server, so
// typing feels instant even against a slow backend.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool
}

// ScoredRow pairs a row with its fuzzy match score. FirstCellPositions
// holds the matched rune positions within the row's first cell, for
// highlighting; empty when the match landed in another cell.
type ScoredRow struct {
	Row                Row
	Score              int
	FirstCellPositions []int
}

// Apply scores every row against the current filter and returns the
// matches sorted by descending score. Ties keep the original row
// order. An empty filter returns all rows unscored, in order.
//
// Each cell is matched independently and the row takes its best cell
// score, so a query can target a SKU, a customer name, or a status
// without the cells bleeding into one another.
func (filter *FilterModel) Apply(rows []Row) []ScoredRow {
	if filter.Input == "" {
		results := make([]ScoredRow, len(rows))
		for index, row := range rows {
			results[index] = ScoredRow{Row: row}
		}
		return results
	}

	pattern := []rune(filter.Input)
	slab := util.MakeSlab(100*1024, 2048)

	var results []ScoredRow
	for _, row := range rows {
		scored := ScoredRow{Row: row}
		for cellIndex, cell := range row.Cells {
			match := FuzzyMatch(cell.Text, pattern, slab)
			if match.Score > scored.Score {
				scored.Score = match.Score
				if cellIndex == 0 {
					scored.FirstCellPositions = match.Positions
				} else {
					scored.FirstCellPositions = nil
				}
			}
		}
		if scored.Score > 0 {
			results = append(results, scored)
		}
	}

	slices.SortStableFunc(results, func(a, b ScoredRow) int {
		return b.Score - a.Score
	})
	return results
}

// HandleRune processes a character typed while the filter is active.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter as a subtle
// indicator. When inactive and empty, returns the empty string.
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}
