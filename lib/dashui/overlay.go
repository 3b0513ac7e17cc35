// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay content, starting at (anchorX, anchorY) in screen
// coordinates. Truncation is ANSI-aware so escape sequences in the
// underlying view survive on both sides of the overlay.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		lineIndex := anchorY + index
		if lineIndex < 0 || lineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[lineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var spliced strings.Builder
		if anchorX > 0 {
			spliced.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(overlayLine)
		spliced.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			spliced.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[lineIndex] = spliced.String()
	}

	return strings.Join(viewLines, "\n")
}

// centerOverlay splices a bordered box of content into the middle of
// the view. Used for the help overlay.
func centerOverlay(view, content string, theme Theme, screenWidth, screenHeight int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 2).
		Render(content)

	lines := strings.Split(box, "\n")
	boxWidth := 0
	if len(lines) > 0 {
		boxWidth = ansi.StringWidth(lines[0])
	}

	anchorX := (screenWidth - boxWidth) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY := (screenHeight - len(lines)) / 2
	if anchorY < 0 {
		anchorY = 0
	}
	return spliceOverlay(view, lines, anchorX, anchorY)
}
