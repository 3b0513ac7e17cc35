// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package inventory implements the "stockroom inventory" command
// group: listing with server-side filters and saved views, and item
// create/update/delete.
package inventory

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

// Command returns the "inventory" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "inventory",
		Summary: "Manage inventory items",
		Description: `List, create, update, and delete inventory items.

Listing supports the server's filters (search, category, stock status)
and paginates. Saved views from views.jsonc can be applied with --view
to reuse a canned filter.`,
		Subcommands: []*cli.Command{
			listCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
		},
	}
}

func listCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var options api.ListInventoryOptions
	var viewName string

	return &cli.Command{
		Name:    "list",
		Summary: "List inventory items",
		Usage:   "stockroom inventory list [flags]",
		Examples: []cli.Example{
			{
				Description: "Search by name or SKU",
				Command:     "stockroom inventory list --search bolt",
			},
			{
				Description: "Show items at or below their minimum stock level",
				Command:     "stockroom inventory list --status low_stock",
			},
			{
				Description: "Apply a saved view",
				Command:     "stockroom inventory list --view low-on-fasteners",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.IntVar(&options.Page, "page", 0, "page number (default: first)")
			flagSet.IntVar(&options.PerPage, "per-page", 0, "items per page (default: server's)")
			flagSet.StringVar(&options.Search, "search", "", "filter by name or SKU")
			flagSet.IntVar(&options.CategoryID, "category", 0, "filter by category id")
			flagSet.StringVar(&options.Status, "status", "", "filter by stock status (low_stock or out_of_stock)")
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

			page, err := apiSession.ListInventory(ctx, options)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(page); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSKU\tCATEGORY\tQTY\tPRICE\tSTATUS")
			for _, item := range page.Items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
					item.ID, item.Name, item.SKU, item.Category,
					item.Quantity, item.Price, item.Status)
			}
			tw.Flush()
			fmt.Fprintf(os.Stdout, "\nPage %d of %d (%d items total)\n",
				page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total)
			return nil
		},
	}
}

// applyView overlays a saved view's query onto options. Explicit
// flags the user set are already in options; the view only fills what
// it defines, so --view plus --search combine naturally.
func applyView(name string, options *api.ListInventoryOptions) error {
	saved, err := views.ReadFile(views.DefaultPath())
	if err != nil {
		return err
	}
	for _, view := range views.ForPage(saved, navigation.PageInventory) {
		if view.Name != name {
			continue
		}
		if view.Query.Search != "" {
			options.Search = view.Query.Search
		}
		if view.Query.CategoryID != 0 {
			options.CategoryID = view.Query.CategoryID
		}
		if view.Query.Status != "" {
			options.Status = view.Query.Status
		}
		return nil
	}
	return fmt.Errorf("no saved inventory view named %q in %s", name, views.DefaultPath())
}

// parseVendorLinks parses repeated --vendor values of the form
// "vendor-id:unit-price". The first link is marked preferred, matching
// how the dashboard treats the primary supplier.
func parseVendorLinks(specs []string) ([]api.VendorLink, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	links := make([]api.VendorLink, 0, len(specs))
	for i, spec := range specs {
		idPart, pricePart, found := strings.Cut(spec, ":")
		if !found {
			return nil, fmt.Errorf("invalid vendor link %q: expected vendor-id:unit-price", spec)
		}
		vendorID, err := cli.ParseID(idPart)
		if err != nil {
			return nil, fmt.Errorf("invalid vendor link %q: %w", spec, err)
		}
		unitPrice, err := strconv.ParseFloat(pricePart, 64)
		if err != nil || unitPrice < 0 {
			return nil, fmt.Errorf("invalid vendor link %q: bad unit price", spec)
		}
		links = append(links, api.VendorLink{
			VendorID:    vendorID,
			UnitPrice:   unitPrice,
			IsPreferred: i == 0,
		})
	}
	return links, nil
}

func createCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var item api.InventoryItem
	var vendorLinks []string

	return &cli.Command{
		Name:    "create",
		Summary: "Create an inventory item",
		Usage:   "stockroom inventory create --name <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create an item with initial stock",
				Command:     "stockroom inventory create --name \"Hex bolt M8\" --sku HB-M8 --category 2 --quantity 500 --price 0.12",
			},
			{
				Description: "Create an item with a vendor link (vendor-id:unit-price)",
				Command:     "stockroom inventory create --name Washer --price 0.05 --vendor 4:0.03",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&item.Name, "name", "", "item name (required)")
			flagSet.StringVar(&item.SKU, "sku", "", "stock keeping unit")
			flagSet.IntVar(&item.CategoryID, "category", 0, "category id")
			flagSet.IntVar(&item.Quantity, "quantity", 0, "initial stock quantity")
			flagSet.Float64Var(&item.Price, "price", 0, "unit price (required)")
			flagSet.StringVar(&item.Description, "description", "", "item description")
			flagSet.IntVar(&item.MinStockLevel, "min-stock", 0, "minimum stock level before low-stock status")
			flagSet.StringArrayVar(&vendorLinks, "vendor", nil, "vendor link as vendor-id:unit-price (repeatable)")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if item.Name == "" {
				return fmt.Errorf("--name is required")
			}
			if item.Price <= 0 {
				return fmt.Errorf("--price must be positive")
			}

			links, err := parseVendorLinks(vendorLinks)
			if err != nil {
				return err
			}
			item.Vendors = links

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

			created, err := apiSession.CreateInventoryItem(ctx, item)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(created); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created item %d: %s\n", created.ID, created.Name)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var item api.InventoryItem
	var vendorLinks []string
	var active bool

	return &cli.Command{
		Name:    "update",
		Summary: "Update an inventory item",
		Usage:   "stockroom inventory update <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Restock an item",
				Command:     "stockroom inventory update 17 --name \"Hex bolt M8\" --price 0.12 --quantity 1200",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.StringVar(&item.Name, "name", "", "item name (required)")
			flagSet.StringVar(&item.SKU, "sku", "", "stock keeping unit")
			flagSet.IntVar(&item.CategoryID, "category", 0, "category id")
			flagSet.IntVar(&item.Quantity, "quantity", 0, "stock quantity")
			flagSet.Float64Var(&item.Price, "price", 0, "unit price (required)")
			flagSet.StringVar(&item.Description, "description", "", "item description")
			flagSet.IntVar(&item.MinStockLevel, "min-stock", 0, "minimum stock level")
			flagSet.BoolVar(&active, "active", true, "whether the item is active")
			flagSet.StringArrayVar(&vendorLinks, "vendor", nil, "vendor link as vendor-id:unit-price (repeatable)")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the item id")
			}
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			if item.Name == "" {
				return fmt.Errorf("--name is required (the server replaces the full item)")
			}
			if item.Price <= 0 {
				return fmt.Errorf("--price must be positive")
			}

			links, err := parseVendorLinks(vendorLinks)
			if err != nil {
				return err
			}
			item.Vendors = links
			item.IsActive = active

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

			updated, err := apiSession.UpdateInventoryItem(ctx, id, item)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(updated); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Updated item %d: %s\n", updated.ID, updated.Name)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete an inventory item",
		Usage:   "stockroom inventory delete <id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the item id")
			}
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
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

			if err := apiSession.DeleteInventoryItem(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted item %d\n", id)
			return nil
		},
	}
}
