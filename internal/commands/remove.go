package commands

import (
	"bufio"   // Prompt reading
	"fmt"     // Output formatting
	"io"      // Prompt streams
	"strings" // Answer parsing

	"github.com/spf13/cobra" // CLI framework
)

func newRemoveCommand(open Opener) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete records after confirmation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			// Confirm unless --yes is set
			if !yes {
				prompt := fmt.Sprintf("Delete %d record(s)?", len(args))
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
					return err
				}
			}

			removed, err := store.RemoveMany(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("deleting records: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s)\n", removed)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
