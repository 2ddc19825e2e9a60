package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/topology"
)

// legendRoles pairs each bus role with its legend text, in display order.
var legendRoles = []struct {
	role topology.Role
	text string
}{
	{topology.RoleSlack, "ext. grid"},
	{topology.RoleGenerator, "generator"},
	{topology.RoleLoad, "load"},
	{topology.RolePlain, "bus"},
}

// Draw renders the topology graph onto a new canvas and returns the image.
// One segment is drawn per connected bus pair (solid for lines, dashed for
// transformers), one role-styled marker per bus with the bus index as its
// label, plus a legend and the optional title.
func Draw(g *topology.Graph, style Style, title string) (image.Image, error) {
	dc := gg.NewContext(style.Width, style.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if style.FontPath != "" {
		if err := dc.LoadFontFace(style.FontPath, style.FontSize); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "load font %s", style.FontPath)
		}
	}

	px := canvasMapper(g, style)

	// Branches first so markers sit on top.
	for _, e := range g.Edges() {
		x1, y1 := px(g.Positions[e.From])
		x2, y2 := px(g.Positions[e.To])
		switch e.Kind {
		case topology.ConnectionTransformer:
			dc.SetColor(style.TrafoColor)
			dc.SetLineWidth(style.LineWidth + 1)
			dc.SetDash(8, 5)
		default:
			dc.SetColor(style.LineColor)
			dc.SetLineWidth(style.LineWidth)
			dc.SetDash()
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}
	dc.SetDash()

	for i := 0; i < g.BusCount; i++ {
		x, y := px(g.Positions[i])
		drawMarker(dc, g.Roles[i], x, y, style)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%d", i), x, y-style.NodeSize-style.FontSize*0.7, 0.5, 0.5)
	}

	drawLegend(dc, style)

	if title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(title, float64(style.Width)/2, style.Margin/3, 0.5, 0.5)
	}

	return dc.Image(), nil
}

// PNG renders the graph and encodes it as PNG bytes.
func PNG(g *topology.Graph, style Style, title string) ([]byte, error) {
	img, err := Draw(g, style, title)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// WritePNG renders the graph into a PNG file.
func WritePNG(path string, g *topology.Graph, style Style, title string) error {
	data, err := PNG(g, style, title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "write %s", path)
	}
	return nil
}

// canvasMapper maps layout coordinates onto the canvas: the layout circle
// is centered and scaled to fit inside the margins, with Y flipped so the
// layout's counter-clockwise angles read as expected on screen.
func canvasMapper(g *topology.Graph, style Style) func(topology.Position) (float64, float64) {
	var maxR float64
	for _, p := range g.Positions {
		if r := max(abs(p.X), abs(p.Y)); r > maxR {
			maxR = r
		}
	}
	if maxR == 0 {
		maxR = 1
	}

	half := min(float64(style.Width), float64(style.Height))/2 - style.Margin
	scale := half / maxR
	cx, cy := float64(style.Width)/2, float64(style.Height)/2

	return func(p topology.Position) (float64, float64) {
		return cx + p.X*scale, cy - p.Y*scale
	}
}

func drawMarker(dc *gg.Context, role topology.Role, x, y float64, style Style) {
	r := style.NodeSize
	switch role {
	case topology.RoleSlack:
		dc.DrawRectangle(x-r, y-r, 2*r, 2*r)
		dc.SetColor(style.SlackColor)
	case topology.RoleGenerator:
		dc.MoveTo(x, y-r)
		dc.LineTo(x-r, y+r)
		dc.LineTo(x+r, y+r)
		dc.ClosePath()
		dc.SetColor(style.GeneratorColor)
	case topology.RoleLoad:
		dc.MoveTo(x, y+r)
		dc.LineTo(x-r, y-r)
		dc.LineTo(x+r, y-r)
		dc.ClosePath()
		dc.SetColor(style.LoadColor)
	default:
		dc.DrawCircle(x, y, r)
		dc.SetColor(style.PlainColor)
	}
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, style Style) {
	x := float64(style.Width) - style.Margin*2
	y := style.Margin / 2
	step := style.NodeSize*2 + 6

	for _, le := range legendRoles {
		drawMarker(dc, le.role, x, y, style)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(le.text, x+style.NodeSize+8, y, 0, 0.5)
		y += step
	}

	// Branch kinds.
	dc.SetColor(style.LineColor)
	dc.SetLineWidth(style.LineWidth)
	dc.SetDash()
	dc.DrawLine(x-style.NodeSize, y, x+style.NodeSize, y)
	dc.Stroke()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("line", x+style.NodeSize+8, y, 0, 0.5)
	y += step

	dc.SetColor(style.TrafoColor)
	dc.SetLineWidth(style.LineWidth + 1)
	dc.SetDash(8, 5)
	dc.DrawLine(x-style.NodeSize, y, x+style.NodeSize, y)
	dc.Stroke()
	dc.SetDash()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("trafo", x+style.NodeSize+8, y, 0, 0.5)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
