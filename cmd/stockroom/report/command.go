// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package report implements the "stockroom report" command group for
// the analytics endpoints behind the dashboard's reports page.
package report

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
)

// Command returns the "report" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "report",
		Summary: "Analytics reports",
		Subcommands: []*cli.Command{
			lowStockCommand(),
			valueCommand(),
		},
	}
}

func lowStockCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "low-stock",
		Summary: "List items at or below their minimum stock level",
		Usage:   "stockroom report low-stock [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("low-stock", pflag.ContinueOnError)
			jsonOut.Register(flagSet)
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
			apiSession, _, err := env.RequireSession()
			if err != nil {
				return err
			}

			ctx, cancel := env.RequestContext()
			defer cancel()

			items, err := apiSession.LowStock(ctx)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(items); done {
				return err
			}

			if len(items) == 0 {
				fmt.Fprintln(os.Stdout, "No items are low on stock")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSKU\tQTY\tMIN\tSTATUS")
			for _, item := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
					item.ID, item.Name, item.SKU,
					item.Quantity, item.MinStockLevel, item.Status)
			}
			return tw.Flush()
		},
	}
}

func valueCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "value",
		Summary: "Show total inventory value by category",
		Usage:   "stockroom report value [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("value", pflag.ContinueOnError)
			jsonOut.Register(flagSet)
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
			apiSession, _, err := env.RequireSession()
			if err != nil {
				return err
			}

			ctx, cancel := env.RequestContext()
			defer cancel()

			value, err := apiSession.InventoryValue(ctx)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(value); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tVALUE")
			for _, slice := range value.CategoryBreakdown {
				fmt.Fprintf(tw, "%s\t%.2f\n", slice.Category, slice.Value)
			}
			fmt.Fprintf(tw, "TOTAL\t%.2f\n", value.TotalValue)
			return tw.Flush()
		},
	}
}
