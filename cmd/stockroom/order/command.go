// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package order implements the "stockroom order" command group.
package order

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
	"github.com/stockroomhq/stockroom/lib/navigation"
	"github.com/stockroomhq/stockroom/lib/views"
)

// Command returns the "order" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "order",
		Summary: "Manage customer orders",
		Description: `List customer orders, create new ones, and move them through their
status lifecycle. Creating an order decrements stock for its line
items; the server rejects lines that exceed available quantity.`,
		Subcommands: []*cli.Command{
			listCommand(),
			createCommand(),
			updateCommand(),
		},
	}
}

func listCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var options api.ListOrdersOptions
	var viewName string

	return &cli.Command{
		Name:    "list",
		Summary: "List customer orders",
		Usage:   "stockroom order list [flags]",
		Examples: []cli.Example{
			{
				Description: "Show pending orders",
				Command:     "stockroom order list --status pending",
			},
			{
				Description: "Apply a saved view",
				Command:     "stockroom order list --view stuck-pending",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.IntVar(&options.Page, "page", 0, "page number (default: first)")
			flagSet.IntVar(&options.PerPage, "per-page", 0, "orders per page (default: server's)")
			flagSet.StringVar(&options.Status, "status", "", "filter by order status")
			flagSet.StringVar(&viewName, "view", "", "apply a saved view from views.jsonc")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if viewName != "" {
				if err := applyView(viewName, &options); err != nil {
					return err
				}
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

			page, err := apiSession.ListOrders(ctx, options)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(page); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tCUSTOMER\tITEMS\tTOTAL\tSTATUS\tCREATED")
			for _, order := range page.Orders {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%s\t%s\n",
					order.ID, order.CustomerName, order.ItemCount,
					order.Total, order.Status, order.CreatedAt)
			}
			tw.Flush()
			fmt.Fprintf(os.Stdout, "\nPage %d of %d (%d orders total)\n",
				page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total)
			return nil
		},
	}
}

// applyView overlays a saved orders-page view's query onto options.
// Explicit flags the user set are already in options; the view only
// fills what it defines, so --view plus --status combine naturally.
func applyView(name string, options *api.ListOrdersOptions) error {
	saved, err := views.ReadFile(views.DefaultPath())
	if err != nil {
		return err
	}
	for _, view := range views.ForPage(saved, navigation.PageOrders) {
		if view.Name != name {
			continue
		}
		if view.Query.Status != "" {
			options.Status = view.Query.Status
		}
		return nil
	}
	return fmt.Errorf("no saved orders view named %q in %s", name, views.DefaultPath())
}

func createCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var order api.Order
	var itemSpecs []string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a customer order",
		Usage:   "stockroom order create --customer <name> --item <inventory-id:qty> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create an order with two line items",
				Command:     "stockroom order create --customer \"Acme Corp\" --item 17:20 --item 23:5",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&order.CustomerName, "customer", "", "customer name (required)")
			flagSet.StringVar(&order.CustomerEmail, "email", "", "customer email")
			flagSet.StringVar(&order.CustomerPhone, "phone", "", "customer phone")
			flagSet.StringArrayVar(&itemSpecs, "item", nil, "order line as inventory-id:quantity (repeatable, required)")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if order.CustomerName == "" {
				return fmt.Errorf("--customer is required")
			}
			if len(itemSpecs) == 0 {
				return fmt.Errorf("at least one --item is required")
			}

			items, err := parseOrderItems(itemSpecs)
			if err != nil {
				return err
			}
			order.Items = items

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

			created, err := apiSession.CreateOrder(ctx, order)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(created); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created order %d for %s (total %.2f)\n",
				created.ID, created.CustomerName, created.Total)
			return nil
		},
	}
}

// parseOrderItems parses repeated --item values of the form
// "inventory-id:quantity".
func parseOrderItems(specs []string) ([]api.OrderItem, error) {
	items := make([]api.OrderItem, 0, len(specs))
	for _, spec := range specs {
		idPart, qtyPart, found := strings.Cut(spec, ":")
		if !found {
			return nil, fmt.Errorf("invalid order line %q: expected inventory-id:quantity", spec)
		}
		inventoryID, err := cli.ParseID(idPart)
		if err != nil {
			return nil, fmt.Errorf("invalid order line %q: %w", spec, err)
		}
		quantity, err := strconv.Atoi(qtyPart)
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("invalid order line %q: quantity must be a positive integer", spec)
		}
		items = append(items, api.OrderItem{
			InventoryID: inventoryID,
			Quantity:    quantity,
		})
	}
	return items, nil
}

func updateCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var status string

	return &cli.Command{
		Name:    "update",
		Summary: "Update an order's status",
		Usage:   "stockroom order update <id> --status <status>",
		Examples: []cli.Example{
			{
				Description: "Mark an order shipped",
				Command:     "stockroom order update 42 --status shipped",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.StringVar(&status, "status", "", "new order status (required)")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the order id")
			}
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			if status == "" {
				return fmt.Errorf("--status is required")
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

			updated, err := apiSession.UpdateOrder(ctx, id, api.Order{Status: status})
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(updated); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Order %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}
