// Copyright 2026 The Stockroom Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/stockroomhq/stockroom/lib/secret"
	"github.com/stockroomhq/stockroom/lib/session"
	"github.com/stockroomhq/stockroom/lib/tokenstore"
)

// loginTimeout is more generous than the usual request timeout
// because a cold backend may still be warming its database pool.
const loginTimeout = 30 * time.Second

// LoginCommand returns the "login" command for authenticating against
// the inventory service. The resulting token is saved to the
// well-known session file; subsequent commands load it transparently.
func LoginCommand() *Command {
	var serverURL string
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Authenticate against the inventory service",
		Description: `Log in to the inventory service and save the session locally.

After login, commands like "stockroom inventory list" and "stockroom
dashboard" use the saved session transparently — no flags needed.

The session file is stored at ~/.config/stockroom/session.json (or
$STOCKROOM_SESSION_FILE if set, or $XDG_CONFIG_HOME/stockroom/session.json).
The file is written with mode 0600 (owner-only read/write) since it
contains an access token.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "stockroom login <username> [flags]",
		Examples: []Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "stockroom login admin",
			},
			{
				Description: "Log in against an explicit server",
				Command:     "stockroom login admin --server http://inventory.example.com:5001",
			},
			{
				Description: "Log in with password from file",
				Command:     "stockroom login staffer --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&serverURL, "server", "", "inventory service URL (default: config server_url)")
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("username is required\n\nUsage: stockroom login <username> [flags]")
			}
			username := args[0]
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}

			env, err := NewEnv()
			if err != nil {
				return err
			}

			passwordBuffer, err := readLoginPassword(passwordFile)
			if err != nil {
				return err
			}
			defer passwordBuffer.Close()

			client, err := env.Client(serverURL)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
			defer cancel()

			manager := session.NewManager(client, env.Store, env.Logger)
			profile, err := manager.Login(ctx, username, passwordBuffer.String())
			if errors.Is(err, session.ErrInvalidCredentials) {
				return fmt.Errorf("login failed: invalid username or password")
			}
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", profile.Username, profile.Role)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", env.Store.Path())
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command. The backend issues
// stateless bearer tokens, so logout is purely local: it discards the
// stored token.
func LogoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Description: `Remove the locally saved session token.

The inventory service issues stateless tokens, so there is nothing to
revoke server-side; the token simply ages out. Logging out of an
already logged-out client is not an error.`,
		Usage: "stockroom logout",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			store := tokenstore.New(tokenstore.DefaultPath())
			credentials, err := store.Load()
			if err != nil {
				return fmt.Errorf("reading session file %s: %w", store.Path(), err)
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}

			if credentials == nil {
				fmt.Fprintln(os.Stderr, "Not logged in")
				return nil
			}
			fmt.Fprintf(os.Stderr, "Logged out %s\n", credentials.Username)
			return nil
		},
	}
}

// readLoginPassword reads a password for the login command. If
// passwordFile is empty or "-", prompts interactively on the terminal
// with echo disabled. Otherwise reads from the file path.
func readLoginPassword(passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" && passwordFile != "-" {
		return secret.ReadFromPath(passwordFile)
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, err
	}
	return buffer, nil
}
