// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// whoamiOutput is the JSON output for the whoami command.
type whoamiOutput struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	Server      string `json:"server"`
	SessionFile string `json:"session_file"`
	Status      string `json:"status,omitempty"`
}

// WhoAmICommand returns the "whoami" command for displaying the
// current identity. Shows the saved session's username, role, server
// URL, and session file path. With --verify, the saved token is
// checked against the server to confirm the session is still valid.
func WhoAmICommand() *Command {
	var jsonOut JSONOutput
	var verify bool

	return &Command{
		Name:    "whoami",
		Summary: "Show the current identity",
		Description: `Display the currently logged-in identity.

Shows the username, role, server URL, and session file path from the
saved session (created by "stockroom login").

With --verify, the saved access token is checked against the server to
confirm the session is still valid. Without --verify, only the local
session file is read (no network access).`,
		Usage: "stockroom whoami [flags]",
		Examples: []Example{
			{
				Description: "Show current identity",
				Command:     "stockroom whoami",
			},
			{
				Description: "Verify the session is still valid",
				Command:     "stockroom whoami --verify",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flagSet.BoolVar(&verify, "verify", false, "verify the session against the server")
			jsonOut.Register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			env, err := NewEnv()
			if err != nil {
				return err
			}

			apiSession, credentials, err := env.RequireSession()
			if err != nil {
				return err
			}

			output := whoamiOutput{
				Username:    credentials.Username,
				Role:        credentials.Role,
				Server:      credentials.ServerURL,
				SessionFile: env.Store.Path(),
			}

			if verify {
				ctx, cancel := env.RequestContext()
				defer cancel()

				profile, err := apiSession.CurrentUser(ctx)
				if err != nil {
					output.Status = "invalid"
					if done, err := jsonOut.EmitJSON(output); done {
						if err != nil {
							return err
						}
						return &ExitError{Code: 1}
					}
					printWhoami(output)
					fmt.Fprintln(os.Stderr, "session expired or revoked — run \"stockroom login\" to refresh")
					return &ExitError{Code: 1}
				}
				// The server's view of the profile wins over the
				// stale copy in the session file.
				output.Username = profile.Username
				output.Role = profile.Role
				output.Status = "valid"
			}

			if done, err := jsonOut.EmitJSON(output); done {
				return err
			}
			printWhoami(output)
			return nil
		},
	}
}

func printWhoami(output whoamiOutput) {
	fmt.Fprintf(os.Stdout, "Username:     %s\n", output.Username)
	fmt.Fprintf(os.Stdout, "Role:         %s\n", output.Role)
	fmt.Fprintf(os.Stdout, "Server:       %s\n", output.Server)
	fmt.Fprintf(os.Stdout, "Session file: %s\n", output.SessionFile)
	if output.Status != "" {
		fmt.Fprintf(os.Stdout, "Status:       %s\n", output.Status)
	}
}
