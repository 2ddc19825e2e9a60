package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/archive"
	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/pipeline"
	"github.com/mfeldt/gridviz/pkg/report"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	networkPath string // load the network from a JSON file instead of a case
	output      string // output base path for artifacts
	title       string // diagram title override
	radius      float64
	noCache     bool
	noTables    bool   // print only the summary block
	saveResults string // write the solved results as JSON
	archiveRun  bool   // store the run summary in the MongoDB archive
}

// runCommand creates the run command: solve a case, print the result tables,
// and write the topology diagram.
func (c *CLI) runCommand() *cobra.Command {
	var formatsStr string
	opts := runOpts{}

	cmd := &cobra.Command{
		Use:   "run [case]",
		Short: "Solve a power-flow case and draw its topology",
		Long: `Solve a power-flow case and draw its topology.

The run command resolves a built-in case (default: ieee14) or a network JSON
file, solves the power flow through the configured solver, prints the bus and
branch result tables, and writes the network diagram.

Solve results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseName := ieee14.CaseName
			if len(args) == 1 {
				caseName = args[0]
			}
			formats := parseFormats(formatsStr, pipeline.FormatPNG)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRun(cmd.Context(), caseName, formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.networkPath, "network", "n", "", "network JSON file (overrides the case argument)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title (default derived from the case)")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "layout circle radius (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the solve cache")
	cmd.Flags().BoolVar(&opts.noTables, "no-tables", false, "print only the summary, skip the result tables")
	cmd.Flags().StringVar(&opts.saveResults, "save-results", "", "write the solved results to a JSON file")
	cmd.Flags().BoolVar(&opts.archiveRun, "archive", false, "store the run summary in the archive")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, caseName string, formats []string, opts runOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	popts.Case = caseName
	popts.NetworkPath = opts.networkPath
	popts.Solver = c.newSolver()
	popts.Formats = formats
	popts.Title = opts.title
	if popts.Title == "" && opts.networkPath == "" {
		popts.Title = caseName + " system"
	}
	if opts.radius > 0 {
		popts.Radius = opts.radius
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Solving %s...", caseName))
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Power flow failed")
		return err
	}
	spinner.Stop()

	fmt.Println(report.RenderSummary(result.Summary))
	if !opts.noTables {
		for _, t := range report.Tables(result.Network, result.Results) {
			fmt.Println(report.Render(t))
		}
	}
	printStats(result.Graph.BusCount, len(result.Graph.Edges()), result.SolveCacheHit)

	base := basePath(opts.output, result.Network.Name)
	if err := writeArtifacts(result.Artifacts, formats, base); err != nil {
		return err
	}

	if opts.saveResults != "" {
		if err := c.saveResults(result.Results, opts.saveResults); err != nil {
			return err
		}
	}
	if opts.archiveRun {
		if err := c.archivePut(ctx, result.Summary); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) saveResults(res *network.Results, path string) error {
	data, err := network.MarshalResults(res)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// archivePut stores the run summary in the configured archive.
func (c *CLI) archivePut(ctx context.Context, summary report.Summary) error {
	store, err := archive.NewMongoStore(ctx, c.Config.Archive.MongoURI, c.Config.Archive.Database)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	run := archive.NewRun(summary)
	if err := store.Put(ctx, run); err != nil {
		return err
	}
	printSuccess("Archived run %s", run.ID)
	return nil
}
