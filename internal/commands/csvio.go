package commands

import (
	"bytes" // Export buffer
	"fmt"   // Output formatting
	"os"    // File access

	"sentinel_engine/internal/codec"  // CSV parsing and writing
	"sentinel_engine/internal/domain" // Record model
	"sentinel_engine/internal/query"  // Filtering and selection

	"github.com/spf13/cobra" // CLI framework
)

func newImportCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Merge a CSV file ahead of the existing records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := codec.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := store.ImportMerge(cmd.Context(), rows)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s), %d re-keyed\n", len(res.Records), res.Rekeyed)
			return err
		},
	}
}

func newExportCommand(open Opener) *cobra.Command {
	var out, search, risk, ids string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			all := store.List()
			var selected []domain.Transaction
			if want := query.SplitIDs(ids); len(want) > 0 {
				selected = query.Select(all, want)
			} else {
				selected = query.Filter(all, search, risk)
			}
			if len(selected) == 0 {
				_, err := fmt.Fprintln(cmd.ErrOrStderr(), "No records available for export")
				return err
			}

			var buf bytes.Buffer
			if err := codec.Serialize(&buf, selected); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}
			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d record(s) to %s\n", len(selected), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, stdout when empty")
	cmd.Flags().StringVar(&search, "search", "", "match user or id, case-insensitive")
	cmd.Flags().StringVar(&risk, "risk", domain.RiskAll, "High, Medium, Low or All")
	cmd.Flags().StringVar(&ids, "ids", "", "comma separated ids, overrides the filters")

	return cmd
}
