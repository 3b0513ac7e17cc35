// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Cell is one table cell: text plus an optional semantic color. The
// zero Color renders in the theme's normal text color.
type Cell struct {
	Text  string
	Color lipgloss.Color
}

// Row is one table row. MatchPositions holds matched rune positions
// within the first cell when a fuzzy filter is active; those runes
// render with the theme's match background.
type Row struct {
	Cells          []Cell
	MatchPositions []int
}

// Table is the scrollable table occupying the content area of every
// page. It owns cursor and scroll state; the model swaps its columns
// and rows when the active page changes.
type Table struct {
	Columns []string
	Rows    []Row

	cursor       int
	scrollOffset int
}

// SetRows replaces the table data and clamps the cursor into range.
func (table *Table) SetRows(rows []Row) {
	table.Rows = rows
	if table.cursor >= len(rows) {
		table.cursor = len(rows) - 1
	}
	if table.cursor < 0 {
		table.cursor = 0
	}
	if table.scrollOffset > table.cursor {
		table.scrollOffset = table.cursor
	}
}

// Cursor returns the index of the selected row.
func (table *Table) Cursor() int {
	return table.cursor
}

// MoveUp moves the cursor up by count rows.
func (table *Table) MoveUp(count int) {
	table.cursor -= count
	if table.cursor < 0 {
		table.cursor = 0
	}
}

// MoveDown moves the cursor down by count rows.
func (table *Table) MoveDown(count int) {
	table.cursor += count
	if table.cursor >= len(table.Rows) {
		table.cursor = len(table.Rows) - 1
	}
	if table.cursor < 0 {
		table.cursor = 0
	}
}

// GotoTop moves the cursor to the first row.
func (table *Table) GotoTop() {
	table.cursor = 0
	table.scrollOffset = 0
}

// GotoBottom moves the cursor to the last row.
func (table *Table) GotoBottom() {
	if len(table.Rows) > 0 {
		table.cursor = len(table.Rows) - 1
	}
}

// ensureVisible adjusts the scroll offset so the cursor row is inside
// the visible window of the given height.
func (table *Table) ensureVisible(height int) {
	if height <= 0 {
		return
	}
	if table.cursor < table.scrollOffset {
		table.scrollOffset = table.cursor
	}
	if table.cursor >= table.scrollOffset+height {
		table.scrollOffset = table.cursor - height + 1
	}
	if table.scrollOffset < 0 {
		table.scrollOffset = 0
	}
}

// columnWidths computes display widths: each column fits its widest
// cell (header included), then the set is proportionally shrunk if it
// overflows the available width. The last column absorbs leftover
// space so the selected-row background spans the pane.
func (table *Table) columnWidths(available int) []int {
	count := len(table.Columns)
	if count == 0 {
		return nil
	}

	widths := make([]int, count)
	for index, column := range table.Columns {
		widths[index] = lipgloss.Width(column)
	}
	for _, row := range table.Rows {
		for index, cell := range row.Cells {
			if index >= count {
				break
			}
			if width := lipgloss.Width(cell.Text); width > widths[index] {
				widths[index] = width
			}
		}
	}

	const separatorWidth = 2
	total := separatorWidth * (count - 1)
	for _, width := range widths {
		total += width
	}

	if total > available {
		usable := available - separatorWidth*(count-1)
		if usable < count*3 {
			usable = count * 3
		}
		contentTotal := total - separatorWidth*(count-1)
		for index := range widths {
			widths[index] = widths[index] * usable / contentTotal
			if widths[index] < 3 {
				widths[index] = 3
			}
		}
		total = separatorWidth * (count - 1)
		for _, width := range widths {
			total += width
		}
	}

	if total < available {
		widths[count-1] += available - total
	}
	return widths
}

// View renders the table at the given dimensions. The first line is
// the header, the rest is the visible row window with a scrollbar in
// the rightmost column. focused controls the scrollbar accent.
func (table *Table) View(theme Theme, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return ""
	}

	contentWidth := width - 2 // scrollbar column plus a space
	widths := table.columnWidths(contentWidth)
	rowHeight := height - 1

	table.ensureVisible(rowHeight)

	headerStyle := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true)

	var output strings.Builder
	output.WriteString(headerStyle.Render(table.formatCells(headerRow(table.Columns), widths, theme, false)))
	output.WriteString("\n")

	scrollbar := renderScrollbar(theme, rowHeight, len(table.Rows), rowHeight, table.scrollOffset, focused)
	scrollbarLines := strings.Split(scrollbar, "\n")

	for line := 0; line < rowHeight; line++ {
		rowIndex := table.scrollOffset + line
		if rowIndex < len(table.Rows) {
			selected := rowIndex == table.cursor
			output.WriteString(table.formatCells(table.Rows[rowIndex], widths, theme, selected))
		} else {
			output.WriteString(strings.Repeat(" ", contentWidth))
		}
		output.WriteString(" ")
		if line < len(scrollbarLines) {
			output.WriteString(scrollbarLines[line])
		}
		if line < rowHeight-1 {
			output.WriteString("\n")
		}
	}
	return output.String()
}

func headerRow(columns []string) Row {
	row := Row{Cells: make([]Cell, len(columns))}
	for index, column := range columns {
		row.Cells[index] = Cell{Text: column}
	}
	return row
}

// formatCells renders one row: cells truncated/padded to their column
// widths, joined with a two-space separator, with per-cell colors and
// the selected-row background applied.
func (table *Table) formatCells(row Row, widths []int, theme Theme, selected bool) string {
	parts := make([]string, len(widths))
	for index, width := range widths {
		var cell Cell
		if index < len(row.Cells) {
			cell = row.Cells[index]
		}

		text := cell.Text
		if lipgloss.Width(text) > width {
			text = ansi.Truncate(text, width, "…")
		}
		padding := width - lipgloss.Width(text)
		if padding > 0 {
			text += strings.Repeat(" ", padding)
		}

		style := lipgloss.NewStyle()
		if cell.Color != "" {
			style = style.Foreground(cell.Color)
		} else if selected {
			style = style.Foreground(theme.SelectedForeground)
		} else {
			style = style.Foreground(theme.NormalText)
		}
		if selected {
			style = style.Background(theme.SelectedBackground)
		}

		if index == 0 && len(row.MatchPositions) > 0 && !selected {
			parts[index] = renderWithMatches(text, row.MatchPositions, style, theme)
		} else {
			parts[index] = style.Render(text)
		}
	}

	separator := "  "
	if selected {
		separator = lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Render(separator)
	}
	return strings.Join(parts, separator)
}

// renderWithMatches renders cell text with the matched rune positions
// tinted by the theme's match background. Positions past the visible
// (possibly truncated) text are dropped.
func renderWithMatches(text string, positions []int, base lipgloss.Style, theme Theme) string {
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}
	matchStyle := base.Background(theme.MatchBackground)

	var output strings.Builder
	var run strings.Builder
	inMatch := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inMatch {
			output.WriteString(matchStyle.Render(run.String()))
		} else {
			output.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for index, character := range []rune(text) {
		if matched[index] != inMatch {
			flush()
			inMatch = matched[index]
		}
		run.WriteRune(character)
	}
	flush()
	return output.String()
}

// renderScrollbar produces a single-column scrollbar of the given
// height. The thumb indicates the visible region within the total
// content, spans the full height when everything fits, and takes the
// accent color when the table has focus.
func renderScrollbar(theme Theme, height, totalRows, visibleRows, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.SidebarActive
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	lines := make([]string, height)

	if totalRows <= visibleRows || totalRows <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := height * visibleRows / totalRows
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollableRange := totalRows - visibleRows
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
