// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package category implements the "stockroom category" command group.
package category

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
)

// Command returns the "category" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "category",
		Summary: "Manage product categories",
		Description: `List, create, rename, and delete the categories inventory items are
filed under. Deleting a category that still has products fails on the
server with a validation error.`,
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

	return &cli.Command{
		Name:    "list",
		Summary: "List categories",
		Usage:   "stockroom category list [flags]",
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

			categories, err := apiSession.ListCategories(ctx)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(categories); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRODUCTS\tDESCRIPTION")
			for _, category := range categories {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
					category.ID, category.Name, category.ProductCount, category.Description)
			}
			return tw.Flush()
		},
	}
}

func createCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var description string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a category",
		Usage:   "stockroom category create <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a category with a description",
				Command:     "stockroom category create Fasteners --description \"Bolts, nuts, washers\"",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&description, "description", "", "category description")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the category name")
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

			created, err := apiSession.CreateCategory(ctx, api.Category{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(created); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created category %d: %s\n", created.ID, created.Name)
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var name string
	var description string

	return &cli.Command{
		Name:    "update",
		Summary: "Update a category",
		Usage:   "stockroom category update <id> --name <name> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.StringVar(&name, "name", "", "new category name (required)")
			flagSet.StringVar(&description, "description", "", "new category description")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the category id")
			}
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("--name is required")
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

			updated, err := apiSession.UpdateCategory(ctx, id, api.Category{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(updated); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Updated category %d: %s\n", updated.ID, updated.Name)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a category",
		Usage:   "stockroom category delete <id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the category id")
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

			if err := apiSession.DeleteCategory(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted category %d\n", id)
			return nil
		},
	}
}
