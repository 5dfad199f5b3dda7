package commands

import (
	"errors"         // Matching store errors
	"fmt"            // Output formatting
	"io"             // Table output
	"text/tabwriter" // Column alignment

	"sentinel_engine/internal/domain"    // Record model
	"sentinel_engine/internal/query"     // Filtering and scoring
	"sentinel_engine/internal/reconcile" // Record store

	"github.com/charmbracelet/lipgloss" // Terminal styling
	"github.com/spf13/cobra"            // CLI framework
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	riskStyles  = map[string]lipgloss.Style{
		domain.RiskHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		domain.RiskMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.RiskLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func renderRisk(risk string) string {
	if style, ok := riskStyles[risk]; ok {
		return style.Render(risk)
	}
	return risk
}

func newListCommand(open Opener) *cobra.Command {
	var search, risk string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			all := store.List()
			rows := query.Filter(all, search, risk)
			return printTable(cmd.OutOrStdout(), rows, query.Count(all))
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match user or id, case-insensitive")
	cmd.Flags().StringVar(&risk, "risk", domain.RiskAll, "High, Medium, Low or All")

	return cmd
}

func printTable(out io.Writer, rows []domain.Transaction, counts query.Counts) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("USER"),
		headerStyle.Render("AMOUNT"),
		headerStyle.Render("STATUS"),
		headerStyle.Render("RISK"),
		headerStyle.Render("DATE"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.User, r.Amount, r.Status, renderRisk(r.Risk), r.Date)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d shown. High: %d  Medium: %d  Low: %d\n",
		len(rows), counts.High, counts.Medium, counts.Low)
	return err
}

func newShowCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record with its risk score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := store.Get(args[0])
			if errors.Is(err, reconcile.ErrNotFound) {
				return fmt.Errorf("no record with id %s", args[0])
			} else if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\n", rec.ID)
			fmt.Fprintf(w, "User\t%s\n", rec.User)
			fmt.Fprintf(w, "Amount\t%s\n", rec.Amount)
			fmt.Fprintf(w, "Status\t%s\n", rec.Status)
			fmt.Fprintf(w, "Risk\t%s\n", renderRisk(rec.Risk))
			fmt.Fprintf(w, "Risk score\t%d\n", query.RiskScore(rec.Risk))
			fmt.Fprintf(w, "Method\t%s\n", rec.Method)
			fmt.Fprintf(w, "Date\t%s\n", rec.Date)
			fmt.Fprintf(w, "Location\t%s\n", rec.Location)
			return w.Flush()
		},
	}
}

func newAddCommand(open Opener) *cobra.Command {
	var input domain.Transaction

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := store.Add(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("adding record: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s)\n", rec.ID, rec.User, rec.Risk)
			return err
		},
	}

	cmd.Flags().StringVar(&input.User, "user", "", "entity involved")
	cmd.Flags().StringVar(&input.Amount, "amount", "", "display amount, e.g. $1,200")
	cmd.Flags().StringVar(&input.Status, "status", "", "Pending, Verified or Flagged")
	cmd.Flags().StringVar(&input.Risk, "risk", "", "High, Medium or Low")
	cmd.Flags().StringVar(&input.Method, "method", "", "channel, e.g. Wire Transfer")
	cmd.Flags().StringVar(&input.Location, "location", "", "origin")

	return cmd
}
