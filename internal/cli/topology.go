package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/pipeline"
)

// topologyCommand creates the topology command: build and draw the network
// graph without running a solve.
func (c *CLI) topologyCommand() *cobra.Command {
	var (
		networkPath string
		output      string
		formatsStr  string
		title       string
		radius      float64
	)

	cmd := &cobra.Command{
		Use:   "topology [case]",
		Short: "Build the network topology graph without solving",
		Long: `Build the network topology graph without solving.

The topology command resolves a case or network file, builds the adjacency
matrix, circular layout, and bus role classification, and writes the graph
artifacts. Branches whose endpoints fall outside the bus range are skipped
and reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseName := ieee14.CaseName
			if len(args) == 1 {
				caseName = args[0]
			}
			formats := parseFormats(formatsStr, pipeline.FormatPNG+","+pipeline.FormatJSON)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runTopology(cmd.Context(), caseName, networkPath, output, title, radius, formats)
		},
	}

	cmd.Flags().StringVarP(&networkPath, "network", "n", "", "network JSON file (overrides the case argument)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png,json (default), svg, dot (comma-separated)")
	cmd.Flags().StringVar(&title, "title", "", "diagram title")
	cmd.Flags().Float64Var(&radius, "radius", 0, "layout circle radius (default from config)")

	return cmd
}

func (c *CLI) runTopology(ctx context.Context, caseName, networkPath, output, title string, radius float64, formats []string) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	popts.Case = caseName
	popts.NetworkPath = networkPath
	popts.SkipSolve = true
	popts.Formats = formats
	popts.Title = title
	if popts.Title == "" && networkPath == "" {
		popts.Title = caseName + " system"
	}
	if radius > 0 {
		popts.Radius = radius
	}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	g := result.Graph
	printSuccess("Built topology for %s", result.Network.Name)
	printStats(g.BusCount, len(g.Edges()), false)
	if g.Skipped > 0 {
		printWarning("Skipped %d branch(es) with out-of-range endpoints", g.Skipped)
	}

	base := basePath(output, result.Network.Name)
	return writeArtifacts(result.Artifacts, formats, base)
}
