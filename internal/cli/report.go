package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/report"
)

// reportCommand creates the report command for printing result tables from a
// saved results file.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		caseName    string
		networkPath string
		summaryOnly bool
	)

	cmd := &cobra.Command{
		Use:   "report [results.json]",
		Short: "Print result tables from a saved results file",
		Long: `Print result tables from a saved results file.

The report command takes a results JSON file (produced by 'run --save-results')
together with the network it was solved against, and prints the summary block
and the bus, line, and transformer tables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(args[0], caseName, networkPath, summaryOnly)
		},
	}

	cmd.Flags().StringVar(&caseName, "case", ieee14.CaseName, "built-in case the results belong to")
	cmd.Flags().StringVarP(&networkPath, "network", "n", "", "network JSON file (overrides --case)")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the summary block")

	return cmd
}

func (c *CLI) runReport(input, caseName, networkPath string, summaryOnly bool) error {
	res, err := network.ReadResultsFile(input)
	if err != nil {
		return fmt.Errorf("load results %s: %w", input, err)
	}

	net, err := resolveCase(caseName, networkPath)
	if err != nil {
		return err
	}
	if err := net.Validate(); err != nil {
		return err
	}
	if !res.Matches(net) {
		return apperrors.New(apperrors.ErrCodeInvalidNetwork,
			"results in %s do not match network %q", input, net.Name)
	}

	fmt.Println(report.RenderSummary(report.Summarize(net, res)))
	if summaryOnly {
		return nil
	}
	for _, t := range report.Tables(net, res) {
		fmt.Println(report.Render(t))
	}
	return nil
}

// resolveCase loads the network from a file or a built-in case name.
func resolveCase(caseName, networkPath string) (*network.Network, error) {
	if networkPath != "" {
		return network.ReadNetworkFile(networkPath)
	}
	switch caseName {
	case ieee14.CaseName, "case14":
		return ieee14.Case(), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeCaseNotFound, "unknown case %q", caseName)
}
