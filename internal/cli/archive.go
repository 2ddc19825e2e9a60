package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/archive"
)

// archiveCommand creates the archive management command.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Browse archived power-flow runs",
	}

	cmd.AddCommand(c.archiveListCommand())

	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArchiveList(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")

	return cmd
}

func (c *CLI) runArchiveList(ctx context.Context, limit int) error {
	store, err := archive.NewMongoStore(ctx, c.Config.Archive.MongoURI, c.Config.Archive.Database)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printInfo("Archive is empty")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		converged := iconSuccess
		if !r.Converged {
			converged = iconError
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Case,
			converged,
			fmt.Sprintf("%.2f", r.TotalLossMW),
			fmt.Sprintf("%.2f", r.BalanceMW),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Case", "Conv", "Loss MW", "Balance MW").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	return nil
}

// shortID abbreviates a run ID for display. IDs written by this tool are
// UUIDs, but the collection may hold documents with arbitrary _id values.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
