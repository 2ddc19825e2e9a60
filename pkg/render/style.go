// Package render draws topology graphs: a raster renderer producing PNG
// images and a Graphviz-based renderer producing DOT and SVG.
//
// Rendering only consumes an already-built [topology.Graph]; a drawing
// failure never invalidates the graph. All appearance settings travel in an
// explicit Style value — the package keeps no process-wide display state.
package render

import (
	"image/color"

	"github.com/flopp/go-findfont"
)

// Style configures the raster renderer. The zero value is not useful; start
// from DefaultStyle.
type Style struct {
	// Canvas size in pixels.
	Width  int
	Height int

	// Margin keeps the layout circle away from the canvas edge (pixels).
	Margin float64

	// NodeSize is the marker radius in pixels.
	NodeSize float64

	// LineWidth is the branch stroke width in pixels.
	LineWidth float64

	// FontPath is a TTF file for labels. Empty uses the built-in bitmap face.
	FontPath string

	// FontSize is the label size in points.
	FontSize float64

	// Role marker colors.
	SlackColor     color.Color
	GeneratorColor color.Color
	LoadColor      color.Color
	PlainColor     color.Color

	// Branch colors.
	LineColor  color.Color
	TrafoColor color.Color
}

// DefaultStyle returns the standard appearance: gray solid lines, blue
// dashed transformers, red slack squares, green generator triangles,
// orange load triangles, light-blue plain circles.
func DefaultStyle() Style {
	return Style{
		Width:          1200,
		Height:         1000,
		Margin:         80,
		NodeSize:       14,
		LineWidth:      1.5,
		FontSize:       13,
		SlackColor:     color.RGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff},
		GeneratorColor: color.RGBA{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff},
		LoadColor:      color.RGBA{R: 0xf0, G: 0xa0, B: 0x30, A: 0xff},
		PlainColor:     color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff},
		LineColor:      color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		TrafoColor:     color.RGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0xff},
	}
}

// ResolveFont returns the path of the first font file found for the given
// family file names (e.g. "DejaVuSans.ttf"), searching the system font
// directories. Returns empty when none is available, in which case the
// renderer falls back to its built-in face.
func ResolveFont(families []string) string {
	for _, name := range families {
		if path, err := findfont.Find(name); err == nil {
			return path
		}
	}
	return ""
}
