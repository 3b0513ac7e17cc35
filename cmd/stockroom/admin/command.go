// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

// Package admin implements the "stockroom admin" command group: user
// accounts, system stats, audit logs, backups, and system settings.
// Every subcommand requires the admin role; the server returns a 403
// validation error otherwise.
package admin

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/stockroomhq/stockroom/api"
	"github.com/stockroomhq/stockroom/cmd/stockroom/cli"
	"github.com/stockroomhq/stockroom/lib/localstate"
)

// Command returns the "admin" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "admin",
		Summary: "Administrative operations",
		Subcommands: []*cli.Command{
			userCommand(),
			statsCommand(),
			auditCommand(),
			backupCommand(),
			settingsCommand(),
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:    "user",
		Summary: "Manage user accounts",
		Subcommands: []*cli.Command{
			userListCommand(),
			userCreateCommand(),
			userUpdateCommand(),
			userDeleteCommand(),
		},
	}
}

func userListCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "list",
		Summary: "List user accounts",
		Usage:   "stockroom admin user list [flags]",
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

			users, err := apiSession.ListUsers(ctx)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(users); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE\tLAST LOGIN")
			for _, user := range users {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n",
					user.ID, user.Username, user.Email, user.Role,
					user.IsActive, user.LastLogin)
			}
			return tw.Flush()
		},
	}
}

// userFlags binds the shared create/update flags onto user.
func userFlags(flagSet *pflag.FlagSet, user *api.NewUser) {
	flagSet.StringVar(&user.Email, "email", "", "account email")
	flagSet.StringVar(&user.Password, "password", "", "account password")
	flagSet.StringVar(&user.Role, "role", "user", "account role (admin, staff, or user)")
	flagSet.BoolVar(&user.IsActive, "active", true, "whether the account is active")
}

func userCreateCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var user api.NewUser

	return &cli.Command{
		Name:    "create",
		Summary: "Create a user account",
		Usage:   "stockroom admin user create <username> --email <email> --password <password> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a staff account",
				Command:     "stockroom admin user create pat --email pat@example.com --password changeme --role staff",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			userFlags(flagSet, &user)
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the username")
			}
			user.Username = args[0]
			if user.Email == "" {
				return fmt.Errorf("--email is required")
			}
			if user.Password == "" {
				return fmt.Errorf("--password is required")
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

			created, err := apiSession.CreateUser(ctx, user)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(created); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Created user %d: %s (%s)\n", created.ID, created.Username, created.Role)
			return nil
		},
	}
}

func userUpdateCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var user api.NewUser

	return &cli.Command{
		Name:    "update",
		Summary: "Update a user account",
		Usage:   "stockroom admin user update <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Deactivate an account",
				Command:     "stockroom admin user update 7 --active=false",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.StringVar(&user.Username, "username", "", "new username")
			userFlags(flagSet, &user)
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the user id")
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

			updated, err := apiSession.UpdateUser(ctx, id, user)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(updated); done {
				return err
			}
			fmt.Fprintf(os.Stdout, "Updated user %d: %s\n", updated.ID, updated.Username)
			return nil
		},
	}
}

func userDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a user account",
		Usage:   "stockroom admin user delete <id>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument: the user id")
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

			if err := apiSession.DeleteUser(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted user %d\n", id)
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "stats",
		Summary: "Show system statistics",
		Usage:   "stockroom admin stats [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("stats", pflag.ContinueOnError)
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

			stats, err := apiSession.SystemStats(ctx)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(stats); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(tw, "Users:\t%d\n", stats.TotalUsers)
			fmt.Fprintf(tw, "Categories:\t%d\n", stats.TotalCategories)
			fmt.Fprintf(tw, "Products:\t%d\n", stats.TotalProducts)
			fmt.Fprintf(tw, "Orders:\t%d\n", stats.TotalOrders)
			fmt.Fprintf(tw, "Low stock:\t%d\n", stats.LowStockItems)
			fmt.Fprintf(tw, "Inventory value:\t%.2f\n", stats.InventoryValue)
			return tw.Flush()
		},
	}
}

func auditCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var options api.AuditLogOptions

	return &cli.Command{
		Name:    "audit",
		Summary: "Show the audit log",
		Usage:   "stockroom admin audit [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("audit", pflag.ContinueOnError)
			flagSet.IntVar(&options.Page, "page", 0, "page number")
			flagSet.IntVar(&options.PerPage, "per-page", 0, "entries per page")
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

			page, err := apiSession.AuditLogs(ctx, options)
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(page); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tUSER\tACTION\tTABLE\tRECORD")
			for _, entry := range page.Logs {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%d\n",
					entry.ID, entry.CreatedAt, entry.UserID,
					entry.Action, entry.TableName, entry.RecordID)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if page.Pagination.Pages > 1 {
				fmt.Fprintf(os.Stdout, "Page %d of %d (%d entries)\n",
					page.Pagination.Page, page.Pagination.Pages, page.Pagination.Total)
			}
			return nil
		},
	}
}

func backupCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "backup",
		Summary: "Request a server-side backup",
		Usage:   "stockroom admin backup [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("backup", pflag.ContinueOnError)
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

			result, err := apiSession.Backup(ctx)
			if api.IsNotImplemented(err) {
				fmt.Fprintln(os.Stderr, "Server does not support backups")
				return &cli.ExitError{Code: 1}
			}
			if err != nil {
				return err
			}

			if done, err := jsonOut.EmitJSON(result); done {
				return err
			}
			fmt.Fprintln(os.Stdout, result.Message)
			if result.Path != "" {
				fmt.Fprintf(os.Stdout, "Backup written to %s\n", result.Path)
			}
			return nil
		},
	}
}

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:    "settings",
		Summary: "View and change system settings",
		Description: `Read and write the system settings the dashboard's settings page
exposes. Servers without a settings endpoint are handled by falling
back to a local settings file, so preferences survive even against a
partial backend.`,
		Subcommands: []*cli.Command{
			settingsGetCommand(),
			settingsSetCommand(),
		},
	}
}

func settingsGetCommand() *cli.Command {
	var jsonOut cli.JSONOutput

	return &cli.Command{
		Name:    "get",
		Summary: "Show system settings",
		Usage:   "stockroom admin settings get [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("get", pflag.ContinueOnError)
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			store := localstate.NewSettingsStore("")
			settings, err := store.Get()
			if err != nil {
				return err
			}
			if settings == nil {
				settings = &api.SystemSettings{
					LowStockThreshold: 10,
					BackupFrequency:   "daily",
					ItemsPerPage:      20,
				}
			}

			if done, err := jsonOut.EmitJSON(settings); done {
				return err
			}
			printSettings(settings)
			return nil
		},
	}
}

func printSettings(settings *api.SystemSettings) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Low stock threshold:\t%d\n", settings.LowStockThreshold)
	fmt.Fprintf(tw, "Auto reorder:\t%t\n", settings.AutoReorder)
	fmt.Fprintf(tw, "Email notifications:\t%t\n", settings.EmailNotifications)
	fmt.Fprintf(tw, "Backup frequency:\t%s\n", settings.BackupFrequency)
	fmt.Fprintf(tw, "Items per page:\t%d\n", settings.ItemsPerPage)
	tw.Flush()
}

func settingsSetCommand() *cli.Command {
	var jsonOut cli.JSONOutput
	var settings api.SystemSettings

	return &cli.Command{
		Name:    "set",
		Summary: "Change system settings",
		Usage:   "stockroom admin settings set [flags]",
		Examples: []cli.Example{
			{
				Description: "Raise the low-stock threshold",
				Command:     "stockroom admin settings set --low-stock-threshold 25",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("set", pflag.ContinueOnError)
			flagSet.IntVar(&settings.LowStockThreshold, "low-stock-threshold", 10, "quantity at which items count as low stock")
			flagSet.BoolVar(&settings.AutoReorder, "auto-reorder", false, "automatically draft purchase orders for low stock")
			flagSet.BoolVar(&settings.EmailNotifications, "email-notifications", false, "send email notifications")
			flagSet.StringVar(&settings.BackupFrequency, "backup-frequency", "daily", "backup frequency (daily, weekly, or monthly)")
			flagSet.IntVar(&settings.ItemsPerPage, "items-per-page", 20, "default page size in listings")
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

			store := localstate.NewSettingsStore("")
			err = apiSession.UpdateSystemSettings(ctx, settings)
			switch {
			case api.IsNotImplemented(err):
				if err := store.Put(&settings); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Server does not persist settings; saved locally to %s\n", store.Path())
			case err != nil:
				return err
			default:
				// Mirror the server copy locally so offline reads
				// stay consistent.
				if err := store.Put(&settings); err != nil {
					env.Logger.Warn("failed to mirror settings locally", "error", err)
				}
			}

			if done, err := jsonOut.EmitJSON(settings); done {
				return err
			}
			printSettings(&settings)
			return nil
		},
	}
}
