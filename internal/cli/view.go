package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/report"
)

// viewCommand creates the view command: solve a case and browse the result
// tables interactively. The program stays open until the user quits.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		networkPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "view [case]",
		Short: "Solve a case and browse the results interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseName := ieee14.CaseName
			if len(args) == 1 {
				caseName = args[0]
			}
			return c.runView(cmd.Context(), caseName, networkPath, noCache)
		},
	}

	cmd.Flags().StringVarP(&networkPath, "network", "n", "", "network JSON file (overrides the case argument)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solve cache")

	return cmd
}

func (c *CLI) runView(ctx context.Context, caseName, networkPath string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	popts.Case = caseName
	popts.NetworkPath = networkPath
	popts.Solver = c.newSolver()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	model := newResultsModel(result.Summary, report.Tables(result.Network, result.Results))
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// ResultsModel - Tabbed results browser
// =============================================================================

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// resultsModel is the bubbletea model for browsing result tables.
type resultsModel struct {
	summary report.Summary
	tables  []report.Table
	tab     int // 0 is the summary, tabs 1..n map to tables[tab-1]
}

func newResultsModel(summary report.Summary, tables []report.Table) resultsModel {
	return resultsModel{summary: summary, tables: tables}
}

func (m resultsModel) Init() tea.Cmd {
	return nil
}

func (m resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.tab > 0 {
				m.tab--
			}
		case "right", "l", "tab":
			if m.tab < len(m.tables) {
				m.tab++
			}
		}
	}
	return m, nil
}

func (m resultsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Power Flow Results: %s", m.summary.Case)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ switch tabs  q quit"))
	b.WriteString("\n\n")

	names := make([]string, 0, len(m.tables)+1)
	names = append(names, "Summary")
	for _, t := range m.tables {
		names = append(names, t.Title)
	}
	for i, name := range names {
		if i > 0 {
			b.WriteString(StyleDim.Render(" | "))
		}
		if i == m.tab {
			b.WriteString(tabActiveStyle.Render(name))
		} else {
			b.WriteString(tabInactiveStyle.Render(name))
		}
	}
	b.WriteString("\n\n")

	if m.tab == 0 {
		b.WriteString(report.RenderSummary(m.summary))
	} else {
		b.WriteString(report.Render(m.tables[m.tab-1]))
	}
	b.WriteString("\n")

	return b.String()
}
