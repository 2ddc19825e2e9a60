// Package pipeline wires the full gridviz flow: resolve a network case,
// solve it through the configured solver (with content-addressed caching),
// build the topology graph, and render the requested artifacts.
package pipeline

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/powerflow"
	"github.com/mfeldt/gridviz/pkg/render"
	"github.com/mfeldt/gridviz/pkg/topology"
)

// Artifact formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats lists the supported artifact formats.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatDOT, FormatJSON}

// ValidateFormats rejects unknown artifact formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(ValidFormats, f) {
			return apperrors.New(apperrors.ErrCodeInvalidFormat,
				"unknown format %q (valid: %s)", f, strings.Join(ValidFormats, ", "))
		}
	}
	return nil
}

// Options configures one pipeline execution.
type Options struct {
	// Case selects a built-in case by name (e.g. "ieee14"). Ignored when
	// Network or NetworkPath is set.
	Case string

	// NetworkPath loads the network from a JSON file instead.
	NetworkPath string

	// Network is a pre-resolved network; takes precedence over both.
	Network *network.Network

	// Solver performs the power-flow solve. Required unless SkipSolve.
	Solver        powerflow.Solver
	SolverOptions powerflow.Options

	// SkipSolve builds and renders the topology without solving, for
	// commands that only need the structural tables.
	SkipSolve bool

	// Radius is the layout circle radius; <= 0 uses the default.
	Radius float64

	// Style and Title configure the raster renderer.
	Style render.Style
	Title string

	// Formats lists the artifacts to produce (png, svg, dot, json).
	Formats []string

	// Logger receives stage progress. Nil uses the default logger.
	Logger *log.Logger
}

// ValidateAndSetDefaults fills zero values and rejects inconsistent options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Network == nil && o.NetworkPath == "" && o.Case == "" {
		return apperrors.New(apperrors.ErrCodeInvalidCase, "no case, network file, or network given")
	}
	if !o.SkipSolve && o.Solver == nil {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "no solver configured")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Radius <= 0 {
		o.Radius = topology.DefaultRadius
	}
	if o.SolverOptions == (powerflow.Options{}) {
		o.SolverOptions = powerflow.DefaultOptions()
	}
	if o.Style.Width == 0 {
		o.Style = render.DefaultStyle()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}
