// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const sidebarWidth = 20

// pageTitles maps page identifiers to their sidebar labels.
var pageTitles = map[string]string{
	"dashboard":       "Dashboard",
	"inventory":       "Inventory",
	"products":        "Products",
	"orders":          "Orders",
	"categories":      "Categories",
	"vendors":         "Vendors",
	"purchase-orders": "Purchase Orders",
	"reports":         "Reports",
	"admin":           "Admin",
	"settings":        "Settings",
}

// tableHeight is the number of rows available to the table: total
// height minus title bar, note line, filter bar, and status bar.
func (model Model) tableHeight() int {
	height := model.height - 4
	if height < 1 {
		return 1
	}
	return height
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading…"
	}

	if !model.manager.IsAuthenticated() {
		return model.login.View(model.theme, model.width, model.height)
	}

	view := model.mainView()
	if model.showHelp {
		view = centerOverlay(view, helpOverlay(model.theme, model.width), model.theme, model.width, model.height)
	}
	return view
}

func (model Model) mainView() string {
	theme := model.theme
	contentWidth := model.width - sidebarWidth - 1
	if contentWidth < 20 {
		contentWidth = 20
	}

	title := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("Stockroom")
	identity := "(" + string(model.manager.Role()) + ")"
	if profile := model.manager.Profile(); profile != nil {
		identity = profile.Username + " " + identity
	}
	titleBar := title + lipgloss.NewStyle().Foreground(theme.FaintText).
		Render("  "+identity)

	sidebar := model.sidebarView()
	content := model.contentView(contentWidth)
	body := joinColumns(sidebar, content, theme, model.height-2)

	return titleBar + "\n" + body + "\n" + model.statusBar()
}

// sidebarView renders the role-gated page list with number shortcuts.
func (model Model) sidebarView() string {
	theme := model.theme
	var lines []string
	for index, page := range model.pages {
		label := pageTitles[string(page)]
		if label == "" {
			label = string(page)
		}
		line := fmt.Sprintf(" %d %s", index+1, label)
		line = ansi.Truncate(line, sidebarWidth, "…")
		if padding := sidebarWidth - ansi.StringWidth(line); padding > 0 {
			line += strings.Repeat(" ", padding)
		}
		if page == model.activePage {
			line = lipgloss.NewStyle().
				Foreground(theme.SidebarActive).
				Bold(true).
				Render(line)
		} else {
			line = lipgloss.NewStyle().Foreground(theme.NormalText).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// contentView renders the note line, filter bar, and table for the
// active page.
func (model Model) contentView(width int) string {
	theme := model.theme

	note := model.data.Note
	if model.degraded && !model.snapshotAge.IsZero() {
		note = fmt.Sprintf("Offline — showing snapshot from %s", model.snapshotAge.Format("2006-01-02 15:04"))
	}
	if model.loading {
		note = "Loading…"
	}
	noteLine := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render(ansi.Truncate(note, width, "…"))

	filterLine := model.filter.View(theme, width)

	table := model.table
	tableView := table.View(theme, width, model.tableHeight(), !model.filter.Active)

	return noteLine + "\n" + filterLine + "\n" + tableView
}

// statusBar renders the bottom line: errors in the error color,
// otherwise key hints.
func (model Model) statusBar() string {
	theme := model.theme
	if model.statusError != "" {
		return lipgloss.NewStyle().Foreground(theme.ErrorText).
			Render(ansi.Truncate(" "+model.statusError, model.width, "…"))
	}
	hints := " Tab: switch page · /: filter · r: refresh · ?: help · q: quit"
	return lipgloss.NewStyle().Foreground(theme.HelpText).
		Render(ansi.Truncate(hints, model.width, "…"))
}

// joinColumns places the sidebar and content side by side with a
// vertical rule, padding both to the same height.
func joinColumns(left, right string, theme Theme, height int) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	if height < len(leftLines) {
		height = len(leftLines)
	}
	if height < len(rightLines) {
		height = len(rightLines)
	}

	rule := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	var builder strings.Builder
	for index := 0; index < height; index++ {
		var leftLine, rightLine string
		if index < len(leftLines) {
			leftLine = leftLines[index]
		}
		if index < len(rightLines) {
			rightLine = rightLines[index]
		}
		if padding := sidebarWidth - ansi.StringWidth(leftLine); padding > 0 {
			leftLine += strings.Repeat(" ", padding)
		}
		builder.WriteString(leftLine)
		builder.WriteString(rule)
		builder.WriteString(rightLine)
		if index < height-1 {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}
