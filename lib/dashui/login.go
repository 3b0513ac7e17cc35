// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginForm is the username/password form shown whenever the session
// is unauthenticated: on first launch, and again after a forced
// logout when the server rejects the stored token.
type loginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password
	notice   string
	busy     bool
}

func newLoginForm() loginForm {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginForm{username: username, password: password}
}

// submitMsg carries the submitted credentials out of the form.
type submitMsg struct {
	username string
	password string
}

// Update routes keystrokes to the focused input. Tab and enter move
// between the fields; enter on the password field submits.
func (form loginForm) Update(message tea.Msg) (loginForm, tea.Cmd) {
	if form.busy {
		return form, nil
	}

	if keyMessage, ok := message.(tea.KeyMsg); ok {
		switch keyMessage.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
			form.toggleFocus()
			return form, textinput.Blink

		case tea.KeyEnter:
			if form.focus == 0 {
				form.toggleFocus()
				return form, textinput.Blink
			}
			username := strings.TrimSpace(form.username.Value())
			password := form.password.Value()
			if username == "" || password == "" {
				form.notice = "Username and password are required"
				return form, nil
			}
			form.busy = true
			form.notice = "Signing in…"
			return form, func() tea.Msg {
				return submitMsg{username: username, password: password}
			}
		}
	}

	var cmd tea.Cmd
	if form.focus == 0 {
		form.username, cmd = form.username.Update(message)
	} else {
		form.password, cmd = form.password.Update(message)
	}
	return form, cmd
}

func (form *loginForm) toggleFocus() {
	if form.focus == 0 {
		form.focus = 1
		form.username.Blur()
		form.password.Focus()
	} else {
		form.focus = 0
		form.password.Blur()
		form.username.Focus()
	}
}

// fail puts the form back into an editable state with an error notice
// after a rejected login attempt.
func (form *loginForm) fail(notice string) {
	form.busy = false
	form.notice = notice
	form.password.SetValue("")
	form.focus = 0
	form.password.Blur()
	form.username.Focus()
}

// View renders the centered login box.
func (form loginForm) View(theme Theme, screenWidth, screenHeight int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("Stockroom")

	var notice string
	if form.notice != "" {
		noticeColor := theme.ErrorText
		if form.busy {
			noticeColor = theme.FaintText
		}
		notice = lipgloss.NewStyle().Foreground(noticeColor).Render(form.notice)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		form.username.View(),
		form.password.View(),
		"",
		notice,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3).
		Width(44).
		Render(body)

	return lipgloss.Place(screenWidth, screenHeight, lipgloss.Center, lipgloss.Center, box)
}
