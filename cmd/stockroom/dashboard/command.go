// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard implements the "stockroom dashboard" command: the
// full-screen terminal UI over the inventory service.
package dashboard

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
	"github.com/stockroomhq/stockroom/lib/config"
	"github.com/stockroomhq/stockroom/lib/dashui"
	"github.com/stockroomhq/stockroom/lib/localstate"
	"github.com/stockroomhq/stockroom/lib/navigation"
	"github.com/stockroomhq/stockroom/lib/session"
)

// bootTimeout bounds the token verification issued before the UI
// starts. Kept separate from the in-UI request timeout because boot
// blocks the terminal takeover.
const bootTimeout = 15 * time.Second

// Command returns the "dashboard" command.
func Command() *cli.Command {
	var serverURL string
	var startPage string
	var themeName string
	var offline bool

	return &cli.Command{
		Name:    "dashboard",
		Summary: "Open the interactive inventory dashboard",
		Description: `Open the full-screen terminal dashboard.

The dashboard shows the pages your role can access: everyone gets the
overview, inventory, products, and orders; staff additionally get
categories, vendors, purchase orders, and reports; admins get the admin
and settings pages on top of that.

If no saved session exists (or the server rejects the stored token),
the dashboard opens on a login form instead of exiting.

With --offline the dashboard serves the snapshot cached by the last
successful run instead of contacting the server. The snapshot covers
the overview, inventory, and orders pages.`,
		Usage: "stockroom dashboard [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the dashboard on the overview page",
				Command:     "stockroom dashboard",
			},
			{
				Description: "Jump straight to the orders page",
				Command:     "stockroom dashboard --page orders",
			},
			{
				Description: "Browse the last cached data without a server",
				Command:     "stockroom dashboard --offline",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
			flagSet.StringVar(&serverURL, "server", "", "inventory service URL (default: config server_url)")
			flagSet.StringVar(&startPage, "page", "", "page to open first (default: config default_page)")
			flagSet.StringVar(&themeName, "theme", "", "color theme: dark or light (default: config theme)")
			flagSet.BoolVar(&offline, "offline", false, "serve the cached snapshot instead of contacting the server")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			env, err := cli.NewEnv()
			if err != nil {
				return err
			}

			page, theme, err := startOptions(env.Config, startPage, themeName)
			if err != nil {
				return err
			}
			client, err := env.Client(serverURL)
			if err != nil {
				return err
			}

			manager := session.NewManager(client, env.Store, env.Logger)
			if offline {
				// Role gating still applies offline, so a stored
				// session is required; but the token is trusted rather
				// than verified, since there is no server to ask.
				if manager.BootOffline() != session.StateAuthenticated {
					return fmt.Errorf("offline mode requires a saved session — run \"stockroom login\" first")
				}
			} else {
				ctx, cancel := context.WithTimeout(context.Background(), bootTimeout)
				manager.Boot(ctx)
				cancel()
			}

			cache := localstate.NewSnapshotCache(filepath.Join(localstate.DefaultDir(), "snapshot.bin"))

			model := dashui.New(manager, dashui.Options{
				Theme:     dashui.ThemeByName(theme),
				Timeout:   env.Config.Timeout(cli.DefaultRequestTimeout),
				Cache:     cache,
				StartPage: page,
				Offline:   offline,
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			return nil
		},
	}
}

// startOptions resolves the opening page and theme, preferring flag
// values over the configured defaults.
func startOptions(cfg *config.Config, pageFlag, themeFlag string) (navigation.Page, string, error) {
	if pageFlag == "" {
		pageFlag = cfg.DefaultPage
	}
	page := navigation.Page(pageFlag)
	if !navigation.Known(page) {
		return "", "", fmt.Errorf("unknown page %q (choose from: %s)", pageFlag, pageNames())
	}
	if themeFlag == "" {
		themeFlag = cfg.Theme
	}
	return page, themeFlag, nil
}

func pageNames() string {
	names := ""
	for index, page := range navigation.Pages() {
		if index > 0 {
			names += ", "
		}
		names += string(page)
	}
	return names
}
