// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package po implements the "stockroom po" command group for purchase
// orders: the draft → submitted → approved → received lifecycle plus
// partial receiving.
package po

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
)

// Command returns the "po" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "po",
		Summary: "Manage purchase orders",
		Description: `Create and track purchase orders placed with vendors.

A purchase order starts as a draft, is submitted and approved, and is
finally received. Receiving (fully or line by line) increments the
stock of the ordered inventory items.`,
		Subcommands: []*cli.Command{
			listCommand(),
			getCommand(),
			createCommand(),
			statusCommand(),
			receiveCommand(),
			deleteCommand(),
		},
	}
}

func listCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "list",
		Summary: "List purchase orders",
		Usage:   "stockroom po list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
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

			orders, err := apiSession.ListPurchaseOrders(ctx)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(orders); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tREFERENCE\tVENDOR\tITEMS\tTOTAL\tSTATUS")
			for _, po := range orders {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\t%s\n",
					po.ID, po.ReferenceNumber, po.VendorName,
					po.ItemCount, po.Total, po.Status)
			}
			return tw.Flush()
		},
	}
}

func getCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "get",
		Summary: "Show a purchase order with its lines",
		Usage:   "stockroom po get <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("get", pflag.ContinueOnError)
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the purchase order id")
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

			po, err := apiSession.GetPurchaseOrder(ctx, id)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(po); done {
				return err
			}
			printPurchaseOrder(po)
			return nil
		},
	}
}

func printPurchaseOrder(po *api.PurchaseOrder) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", po.ID)
	fmt.Fprintf(tw, "Reference:\t%s\n", po.ReferenceNumber)
	fmt.Fprintf(tw, "Vendor:\t%s\n", po.VendorName)
	fmt.Fprintf(tw, "Status:\t%s\n", po.Status)
	fmt.Fprintf(tw, "Total:\t%.2f\n", po.Total)
	if po.ExpectedDeliveryDate != "" {
		fmt.Fprintf(tw, "Expected:\t%s\n", po.ExpectedDeliveryDate)
	}
	if po.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", po.Notes)
	}
	tw.Flush()

	if len(po.Items) == 0 {
		return
	}
	fmt.Fprintln(os.Stdout)
	tw = tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tQTY\tRECEIVED\tUNIT PRICE\tTOTAL")
	for _, item := range po.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.2f\t%.2f\n",
			item.ID, item.ProductName, item.Quantity,
			item.ReceivedQuantity, item.UnitPrice, item.TotalPrice)
	}
	tw.Flush()
}

func createCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var po api.PurchaseOrder
	var itemSpecs []string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a draft purchase order",
		Usage:   "stockroom po create --vendor <id> --item <inventory-id:qty:unit-price> [flags]",
		Examples: []cli.Example{
			{
				Description: "Order 1000 bolts from vendor 4",
				Command:     "stockroom po create --vendor 4 --item 17:1000:0.09 --expected 2026-09-15",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.IntVar(&po.VendorID, "vendor", 0, "vendor id (required)")
			flagSet.StringArrayVar(&itemSpecs, "item", nil, "order line as inventory-id:quantity:unit-price (repeatable, required)")
			flagSet.StringVar(&po.ExpectedDeliveryDate, "expected", "", "expected delivery date (YYYY-MM-DD)")
			flagSet.StringVar(&po.Notes, "notes", "", "free-form notes")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if po.VendorID <= 0 {
				return fmt.Errorf("--vendor is required")
			}
			if len(itemSpecs) == 0 {
				return fmt.Errorf("at least one --item is required")
			}

			items, err := parseLines(itemSpecs)
			if err != nil {
				return err
			}
			po.Items = items

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

			created, err := apiSession.CreatePurchaseOrder(ctx, po)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(created); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created purchase order %d (%s) for %s, total %.2f\n",
				created.ID, created.ReferenceNumber, created.VendorName, created.Total)
			return nil
		},
	}
}

// parseLines parses repeated --item values of the form
// "inventory-id:quantity:unit-price".
func parseLines(specs []string) ([]api.PurchaseOrderItem, error) {
	items := make([]api.PurchaseOrderItem, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid order line %q: expected inventory-id:quantity:unit-price", spec)
		}
		inventoryID, err := cli.ParseID(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid order line %q: %w", spec, err)
		}
		quantity, err := strconv.Atoi(parts[1])
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("invalid order line %q: quantity must be a positive integer", spec)
		}
		unitPrice, err := strconv.ParseFloat(parts[2], 64)
		if err != nil || unitPrice < 0 {
			return nil, fmt.Errorf("invalid order line %q: bad unit price", spec)
		}
		items = append(items, api.PurchaseOrderItem{
			InventoryID: inventoryID,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
	}
	return items, nil
}

func statusCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "status",
		Summary: "Advance a purchase order's status",
		Usage:   "stockroom po status <id> <draft|submitted|approved|received|canceled>",
		Examples: []cli.Example{
			{
				Description: "Submit a draft for approval",
				Command:     "stockroom po status 9 submitted",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected two arguments: the purchase order id and the new status")
			}
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			status := args[1]
			switch status {
			case api.POStatusDraft, api.POStatusSubmitted, api.POStatusApproved,
				api.POStatusReceived, api.POStatusCanceled:
			default:
				return fmt.Errorf("unknown status %q", status)
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

			updated, err := apiSession.UpdatePurchaseOrderStatus(ctx, id, status)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(updated); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Purchase order %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func receiveCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var itemSpecs []string

	return &cli.Command{
		Name:    "receive",
		Summary: "Record a delivery against a purchase order",
		Usage:   "stockroom po receive <id> [--item <line-id:qty>]...",
		Description: `Record receipt of goods. With no --item flags every outstanding line
is received in full; with --item flags only the named lines are
received, allowing partial deliveries.`,
		Examples: []cli.Example{
			{
				Description: "Receive the whole order",
				Command:     "stockroom po receive 9",
			},
			{
				Description: "Receive 400 of line 31 only",
				Command:     "stockroom po receive 9 --item 31:400",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("receive", pflag.ContinueOnError)
			flagSet.StringArrayVar(&itemSpecs, "item", nil, "receipt as line-id:quantity (repeatable; default: all lines in full)")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the purchase order id")
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

			var request api.ReceiveRequest
			if len(itemSpecs) > 0 {
				request.Items, err = parseReceipts(itemSpecs)
				if err != nil {
					return err
				}
			} else {
				// Full receipt: pull the order and receive every
				// outstanding quantity.
				po, err := apiSession.GetPurchaseOrder(ctx, id)
				if err != nil {
					return err
				}
				for _, item := range po.Items {
					outstanding := item.Quantity - item.ReceivedQuantity
					if outstanding <= 0 {
						continue
					}
					request.Items = append(request.Items, api.ReceiveItem{
						ID:               item.ID,
						ReceivedQuantity: outstanding,
					})
				}
				if len(request.Items) == 0 {
					return fmt.Errorf("purchase order %d has no outstanding lines", id)
				}
			}

			updated, err := apiSession.ReceivePurchaseOrder(ctx, id, request)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(updated); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Purchase order %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

// parseReceipts parses repeated --item values of the form
// "line-id:quantity".
func parseReceipts(specs []string) ([]api.ReceiveItem, error) {
	items := make([]api.ReceiveItem, 0, len(specs))
	for _, spec := range specs {
		idPart, qtyPart, found := strings.Cut(spec, ":")
		if !found {
			return nil, fmt.Errorf("invalid receipt %q: expected line-id:quantity", spec)
		}
		itemID, err := cli.ParseID(idPart)
		if err != nil {
			return nil, fmt.Errorf("invalid receipt %q: %w", spec, err)
		}
		quantity, err := strconv.Atoi(qtyPart)
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("invalid receipt %q: quantity must be a positive integer", spec)
		}
		items = append(items, api.ReceiveItem{
			ID:               itemID,
			ReceivedQuantity: quantity,
		})
	}
	return items, nil
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a draft purchase order",
		Usage:   "stockroom po delete <id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the purchase order id")
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

			if err := apiSession.DeletePurchaseOrder(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted purchase order %d\n", id)
			return nil
		},
	}
}
