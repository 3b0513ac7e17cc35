// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete stockroom CLI command tree.
package commands

import (
	"fmt"

	admincmd "github.com/stockroomhq/stockroom/cmd/stockroom/admin"
	categorycmd "github.com/stockroomhq/stockroom/cmd/stockroom/category"
	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
	dashboardcmd "github.com/stockroomhq/stockroom/cmd/stockroom/dashboard"
	inventorycmd "github.com/stockroomhq/stockroom/cmd/stockroom/inventory"
	ordercmd "github.com/stockroomhq/stockroom/cmd/stockroom/order"
	pocmd "github.com/stockroomhq/stockroom/cmd/stockroom/po"
	reportcmd "github.com/stockroomhq/stockroom/cmd/stockroom/report"
	vendorcmd "github.com/stockroomhq/stockroom/cmd/stockroom/vendor"
	"github.com/stockroomhq/stockroom/lib/version"
)

// Root builds and returns the complete stockroom CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "stockroom",
		Description: `Stockroom: terminal client for the inventory service.

Browse and manage inventory, orders, vendors, and purchase orders from
the command line, or open the full-screen dashboard for interactive
use. Commands respect your account's role: staff-level resources and
admin tooling return permission errors for accounts without access.`,
		Subcommands: []*cli.Command{
			cli.LoginCommand(),
			cli.LogoutCommand(),
			cli.WhoAmICommand(),
			dashboardcmd.Command(),
			inventorycmd.Command(),
			categorycmd.Command(),
			ordercmd.Command(),
			vendorcmd.Command(),
			pocmd.Command(),
			reportcmd.Command(),
			admincmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("stockroom %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authenticate against the inventory service",
				Command:     "stockroom login admin",
			},
			{
				Description: "Open the interactive dashboard",
				Command:     "stockroom dashboard",
			},
			{
				Description: "List inventory, filtered to one category",
				Command:     "stockroom inventory list --category Electronics",
			},
			{
				Description: "Record an incoming purchase order delivery",
				Command:     "stockroom po receive 12",
			},
			{
				Description: "See which items need restocking",
				Command:     "stockroom report low-stock",
			},
		},
	}
}
