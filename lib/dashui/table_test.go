// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTableCursorClamping(t *testing.T) {
	table := Table{Columns: []string{"NAME"}}
	table.SetRows([]Row{makeRow("a"), makeRow("b"), makeRow("c")})

	table.MoveDown(10)
	if table.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", table.Cursor())
	}
	table.MoveUp(10)
	if table.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", table.Cursor())
	}
	table.GotoBottom()
	if table.Cursor() != 2 {
		t.Fatalf("cursor = %d after GotoBottom, want 2", table.Cursor())
	}
	table.GotoTop()
	if table.Cursor() != 0 {
		t.Fatalf("cursor = %d after GotoTop, want 0", table.Cursor())
	}
}

func TestTableSetRowsClampsCursor(t *testing.T) {
	table := Table{Columns: []string{"NAME"}}
	table.SetRows([]Row{makeRow("a"), makeRow("b"), makeRow("c")})
	table.GotoBottom()

	table.SetRows([]Row{makeRow("a")})
	if table.Cursor() != 0 {
		t.Fatalf("cursor = %d after shrink, want 0", table.Cursor())
	}

	table.SetRows(nil)
	if table.Cursor() != 0 {
		t.Fatalf("cursor = %d on empty table, want 0", table.Cursor())
	}
}

func TestTableScrollFollowsCursor(t *testing.T) {
	table := Table{Columns: []string{"NAME"}}
	var rows []Row
	for index := 0; index < 20; index++ {
		rows = append(rows, makeRow(strings.Repeat("x", index+1)))
	}
	table.SetRows(rows)

	table.MoveDown(15)
	table.ensureVisible(5)
	if table.scrollOffset != 11 {
		t.Fatalf("scrollOffset = %d, want 11 (cursor 15 in window of 5)", table.scrollOffset)
	}

	table.MoveUp(15)
	table.ensureVisible(5)
	if table.scrollOffset != 0 {
		t.Fatalf("scrollOffset = %d after scrolling back, want 0", table.scrollOffset)
	}
}

func TestTableViewDimensions(t *testing.T) {
	table := Table{Columns: []string{"NAME", "QTY"}}
	table.SetRows([]Row{
		makeRow("Widget", "5"),
		makeRow("Sprocket", "12"),
	})

	view := table.View(DefaultTheme, 40, 6, true)
	lines := strings.Split(view, "\n")
	if len(lines) != 6 {
		t.Fatalf("view has %d lines, want 6", len(lines))
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width > 40 {
			t.Errorf("line %d is %d cells wide, want <= 40", index, width)
		}
	}

	plain := ansi.Strip(view)
	if !strings.Contains(plain, "NAME") || !strings.Contains(plain, "QTY") {
		t.Fatal("header row missing from view")
	}
	if !strings.Contains(plain, "Widget") || !strings.Contains(plain, "Sprocket") {
		t.Fatal("data rows missing from view")
	}
}

func TestTableViewTruncatesWideCells(t *testing.T) {
	table := Table{Columns: []string{"NAME"}}
	table.SetRows([]Row{makeRow(strings.Repeat("w", 100))})

	view := table.View(DefaultTheme, 20, 3, false)
	for index, line := range strings.Split(view, "\n") {
		if width := ansi.StringWidth(line); width > 20 {
			t.Errorf("line %d is %d cells wide, want <= 20", index, width)
		}
	}
}

func TestTableHighlightsFilterMatches(t *testing.T) {
	table := Table{Columns: []string{"NAME"}}
	row := makeRow("Widget")
	row.MatchPositions = []int{0, 1, 2}
	table.SetRows([]Row{row, makeRow("Sprocket")})

	view := table.View(DefaultTheme, 30, 4, false)
	if ansi.Strip(view) == view {
		t.Fatal("highlighted view carries no ANSI styling")
	}
	if !strings.Contains(ansi.Strip(view), "Widget") {
		t.Fatal("highlighted text mangled")
	}
}

func TestTableViewTooSmall(t *testing.T) {
	table := Table{Columns: []string{"NAME"}}
	if view := table.View(DefaultTheme, 2, 1, false); view != "" {
		t.Fatalf("degenerate dimensions should render nothing, got %q", view)
	}
}
