package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/topology"
)

// Graphviz attributes per bus role.
var roleAttrs = map[topology.Role]string{
	topology.RoleSlack:     `shape=box, fillcolor="indianred1"`,
	topology.RoleGenerator: `shape=triangle, fillcolor="palegreen"`,
	topology.RoleLoad:      `shape=invtriangle, fillcolor="orange"`,
	topology.RolePlain:     `shape=circle, fillcolor="lightblue"`,
}

// ToDOT converts a topology graph to Graphviz DOT format. The graph is
// undirected; transformer branches are drawn dashed. The resulting string
// can be rendered in process with [RenderSVG] or fed to the graphviz CLI.
func ToDOT(g *topology.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph topology {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fontsize=11];\n")
	buf.WriteString("\n")

	for i := 0; i < g.BusCount; i++ {
		label := fmt.Sprintf("%d", i)
		if name := g.Label(i); name != "" {
			label = fmt.Sprintf("%d\\n%s", i, name)
		}
		fmt.Fprintf(&buf, "  %d [label=\"%s\", %s];\n", i, label, roleAttrs[g.Roles[i]])
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Kind == topology.ConnectionTransformer {
			fmt.Fprintf(&buf, "  %d -- %d [style=dashed, color=blue];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %d -- %d [color=gray50];\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using the in-process Graphviz
// engine. No external graphviz installation is required.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render svg")
	}
	return buf.Bytes(), nil
}
