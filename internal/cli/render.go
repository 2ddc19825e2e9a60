package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/pipeline"
	"github.com/mfeldt/gridviz/pkg/render"
	"github.com/mfeldt/gridviz/pkg/topology"
)

// renderCommand creates the render command for drawing a saved graph.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		title      string
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Draw a previously built topology graph",
		Long: `Draw a previously built topology graph.

The render command takes a graph.json file (produced by 'topology' or 'run')
and draws it to PNG, SVG, or DOT. The graph contains all positioning and role
information, so this step is purely about drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr, pipeline.FormatPNG)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(args[0], output, title, formats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot (comma-separated)")
	cmd.Flags().StringVar(&title, "title", "", "diagram title")

	return cmd
}

func (c *CLI) runRender(input, output, title string, formats []string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	g, err := topology.UnmarshalGraph(data)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	prog := newProgress(c.Logger)
	style := c.Config.RenderStyle()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var (
			out []byte
			err error
		)
		switch format {
		case pipeline.FormatPNG:
			out, err = render.PNG(g, style, title)
		case pipeline.FormatSVG:
			out, err = render.RenderSVG(render.ToDOT(g))
		case pipeline.FormatDOT:
			out = []byte(render.ToDOT(g))
		case pipeline.FormatJSON:
			out, err = topology.MarshalGraph(g)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = out
	}
	prog.done(fmt.Sprintf("Rendered %d buses in %d format(s)", g.BusCount, len(formats)))

	return writeArtifacts(artifacts, formats, basePath(output, input))
}
