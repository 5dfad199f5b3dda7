// Package commands implements the sentinel command line client, which works
// on the same record store as the HTTP server.
package commands

import (
	"context" // Command context

	"sentinel_engine/internal/reconcile" // Record store

	"github.com/spf13/cobra" // CLI framework
)

// Opener returns a loaded store. It is called once per command run.
type Opener func(ctx context.Context) (*reconcile.Store, error)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(open Opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentinel",
		Short: "Inspect and reconcile risk-scored transactions",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newListCommand(open),
		newShowCommand(open),
		newAddCommand(open),
		newImportCommand(open),
		newExportCommand(open),
		newRemoveCommand(open),
	)

	return rootCmd
}
