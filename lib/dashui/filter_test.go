// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "testing"

func makeRow(cells ...string) Row {
	row := Row{}
	for _, text := range cells {
		row.Cells = append(row.Cells, Cell{Text: text})
	}
	return row
}

func TestFilterEmptyReturnsAllInOrder(t *testing.T) {
	filter := &FilterModel{}
	rows := []Row{
		makeRow("Widget", "WID-001"),
		makeRow("Sprocket", "SPR-002"),
	}

	results := filter.Apply(rows)
	if len(results) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(results))
	}
	for index, result := range results {
		if result.Row.Cells[0].Text != rows[index].Cells[0].Text {
			t.Errorf("row %d reordered: got %q", index, result.Row.Cells[0].Text)
		}
		if result.Score != 0 {
			t.Errorf("empty filter should not score, got %d", result.Score)
		}
	}
}

func TestFilterDropsNonMatches(t *testing.T) {
	filter := &FilterModel{Input: "widget"}
	rows := []Row{
		makeRow("Widget", "WID-001"),
		makeRow("Sprocket", "SPR-002"),
	}

	results := filter.Apply(rows)
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Row.Cells[0].Text != "Widget" {
		t.Fatalf("wrong row survived: %q", results[0].Row.Cells[0].Text)
	}
	if results[0].Score <= 0 {
		t.Fatal("surviving row must carry a positive score")
	}
}

func TestFilterMatchesAnyCell(t *testing.T) {
	filter := &FilterModel{Input: "spr002"}
	rows := []Row{
		makeRow("Widget", "WID-001"),
		makeRow("Sprocket", "SPR-002"),
	}

	results := filter.Apply(rows)
	if len(results) != 1 || results[0].Row.Cells[1].Text != "SPR-002" {
		t.Fatalf("SKU cell should match: %+v", results)
	}
	// Positions are only kept for first-cell matches.
	if results[0].FirstCellPositions != nil {
		t.Fatal("non-first-cell match must not report first-cell positions")
	}
}

func TestFilterSortsByScoreDescending(t *testing.T) {
	filter := &FilterModel{Input: "ord"}
	rows := []Row{
		makeRow("organic powder"),
		makeRow("order"),
	}

	results := filter.Apply(rows)
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Row.Cells[0].Text != "order" {
		t.Fatalf("tighter match should sort first, got %q", results[0].Row.Cells[0].Text)
	}
}

func TestFilterEditing(t *testing.T) {
	filter := &FilterModel{Active: true}
	filter.HandleRune('a')
	filter.HandleRune('b')
	if filter.Input != "ab" {
		t.Fatalf("Input = %q, want %q", filter.Input, "ab")
	}
	if !filter.HandleBackspace() {
		t.Fatal("backspace on non-empty input should report a change")
	}
	if filter.Input != "a" {
		t.Fatalf("Input = %q, want %q", filter.Input, "a")
	}
	filter.Clear()
	if filter.Input != "" || filter.Active {
		t.Fatal("Clear must reset input and focus")
	}
	if filter.HandleBackspace() {
		t.Fatal("backspace on empty input should be a no-op")
	}
}
