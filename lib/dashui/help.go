// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

// helpDocument is the help overlay content. Kept as markdown and
// rendered through the terminal markdown renderer so the text reflows
// to the terminal width.
const helpDocument = `## Keyboard reference

| Key   | Action                       |
|-------|------------------------------|
| j/↓   | move down                    |
| k/↑   | move up                      |
| g / G | jump to top / bottom         |
| Tab   | next page                    |
| S-Tab | previous page                |
| 1-9   | jump to page by number       |
| /     | filter the current table     |
| Esc   | clear filter / close overlay |
| r     | refresh from the server      |
| ?     | toggle this help             |
| q     | quit                         |

Filtering is fuzzy: ` + "`hbm8`" + ` matches *Hex bolt M8*. The filter
narrows the current page only and clears when you switch pages.

When the server is unreachable the dashboard falls back to the last
cached snapshot and the status bar shows its age. Press ` + "`r`" + ` to
retry the live connection.`

// helpOverlay renders the help document for the given screen size.
func helpOverlay(theme Theme, screenWidth int) string {
	width := screenWidth - 10
	if width > 72 {
		width = 72
	}
	if width < 30 {
		width = 30
	}
	return renderMarkdown(helpDocument, theme, width)
}
