package topology

import (
	"encoding/json"

	"github.com/mfeldt/gridviz/pkg/network"
)

// Graph bundles the three data products of the builder plus display labels.
// It is the canonical serialization format between the build and render
// stages: build once, render any number of times.
type Graph struct {
	BusCount  int        `json:"bus_count" bson:"bus_count"`
	Labels    []string   `json:"labels,omitempty" bson:"labels,omitempty"`
	Adjacency Adjacency  `json:"adjacency" bson:"adjacency"`
	Positions []Position `json:"positions" bson:"positions"`
	Roles     []Role     `json:"roles" bson:"roles"`

	// Skipped counts branches dropped for out-of-range endpoints.
	Skipped int `json:"skipped,omitempty" bson:"skipped,omitempty"`
}

// Build derives the full topology graph from a network's structural tables
// using a circular layout of the given radius. Radius values <= 0 fall back
// to DefaultRadius.
func Build(net *network.Network, radius float64) *Graph {
	if radius <= 0 {
		radius = DefaultRadius
	}
	n := net.BusCount()

	lines := make([]Branch, len(net.Lines))
	for i, l := range net.Lines {
		lines[i] = Branch{From: l.FromBus, To: l.ToBus}
	}
	trafos := make([]Branch, len(net.Trafos))
	for i, t := range net.Trafos {
		trafos[i] = Branch{From: t.HVBus, To: t.LVBus}
	}

	adj, skipped := BuildAdjacency(n, lines, trafos)

	labels := make([]string, n)
	for i, b := range net.Buses {
		labels[i] = b.Name
	}

	return &Graph{
		BusCount:  n,
		Labels:    labels,
		Adjacency: adj,
		Positions: CircularLayout(n, radius),
		Roles:     ClassifyRoles(n, net.GeneratorBuses(), net.LoadBuses(), net.SlackBuses()),
		Skipped:   skipped,
	}
}

// Edges returns each connected unordered bus pair exactly once (i < j)
// with its connection kind, in row-major order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for i := 0; i < g.BusCount; i++ {
		for j := i + 1; j < g.BusCount; j++ {
			if c := g.Adjacency.At(i, j); c != ConnectionNone {
				edges = append(edges, Edge{From: i, To: j, Kind: c})
			}
		}
	}
	return edges
}

// Edge is one rendered segment: an unordered bus pair and its kind.
type Edge struct {
	From int
	To   int
	Kind Connection
}

// Label returns the display label for a bus, falling back to nothing when
// the bus table carried no name.
func (g *Graph) Label(i int) string {
	if i >= 0 && i < len(g.Labels) {
		return g.Labels[i]
	}
	return ""
}

// MarshalGraph encodes a graph as indented JSON.
func MarshalGraph(g *Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph decodes a graph from JSON produced by MarshalGraph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
