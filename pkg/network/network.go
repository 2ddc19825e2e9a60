// Package network defines the power-network data model consumed by the
// solver, topology, and reporting layers.
//
// A Network holds the structural tables of a case (buses, branches,
// equipment); Results holds the per-element tables produced by a power-flow
// solve. Buses are identified by dense zero-based indices, so the row
// position in each table is the element index. All slices are plain data
// suitable for JSON and BSON serialization.
package network

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
)

// Bus type tags, following common case-file conventions.
const (
	// BusTypeBusbar marks an ordinary busbar node.
	BusTypeBusbar = "b"

	// BusTypeRef marks the reference (slack) bus.
	BusTypeRef = "ref"
)

// Bus is a node in the electrical network, a point of common voltage.
type Bus struct {
	Name string  `json:"name" bson:"name"`
	VnKV float64 `json:"vn_kv" bson:"vn_kv"` // Nominal voltage level
	Type string  `json:"type,omitempty" bson:"type,omitempty"`
}

// Line is a branch connecting two buses at the same voltage level.
// FromBus and ToBus are zero-based bus indices; direction only fixes the
// sign convention of flows, the topology is undirected.
type Line struct {
	Name     string  `json:"name,omitempty" bson:"name,omitempty"`
	FromBus  int     `json:"from_bus" bson:"from_bus"`
	ToBus    int     `json:"to_bus" bson:"to_bus"`
	LengthKM float64 `json:"length_km,omitempty" bson:"length_km,omitempty"`
	MaxIKA   float64 `json:"max_i_ka,omitempty" bson:"max_i_ka,omitempty"` // Thermal rating
}

// Transformer is a branch connecting a high-voltage and a low-voltage bus.
type Transformer struct {
	Name  string  `json:"name,omitempty" bson:"name,omitempty"`
	HVBus int     `json:"hv_bus" bson:"hv_bus"`
	LVBus int     `json:"lv_bus" bson:"lv_bus"`
	SnMVA float64 `json:"sn_mva,omitempty" bson:"sn_mva,omitempty"` // Rated power
}

// Generator is a PV machine holding voltage magnitude at its bus.
type Generator struct {
	Name string  `json:"name,omitempty" bson:"name,omitempty"`
	Bus  int     `json:"bus" bson:"bus"`
	PMW  float64 `json:"p_mw" bson:"p_mw"`
	VMPU float64 `json:"vm_pu" bson:"vm_pu"` // Voltage setpoint
}

// Load is a PQ consumption at a bus.
type Load struct {
	Name  string  `json:"name,omitempty" bson:"name,omitempty"`
	Bus   int     `json:"bus" bson:"bus"`
	PMW   float64 `json:"p_mw" bson:"p_mw"`
	QMVar float64 `json:"q_mvar" bson:"q_mvar"`
}

// ExtGrid is an external-grid connection: the slack that anchors voltage
// magnitude and angle for the solution.
type ExtGrid struct {
	Name     string  `json:"name,omitempty" bson:"name,omitempty"`
	Bus      int     `json:"bus" bson:"bus"`
	VMPU     float64 `json:"vm_pu" bson:"vm_pu"`
	VADegree float64 `json:"va_degree" bson:"va_degree"`
}

// Network is a complete structural description of a power-network case.
type Network struct {
	Name     string        `json:"name" bson:"name"`
	Buses    []Bus         `json:"buses" bson:"buses"`
	Lines    []Line        `json:"lines" bson:"lines"`
	Trafos   []Transformer `json:"trafos" bson:"trafos"`
	Gens     []Generator   `json:"gens" bson:"gens"`
	Loads    []Load        `json:"loads" bson:"loads"`
	ExtGrids []ExtGrid     `json:"ext_grids" bson:"ext_grids"`
}

// BusCount returns the number of buses in the network.
func (n *Network) BusCount() int { return len(n.Buses) }

// GeneratorBuses returns the bus indices carrying a generator.
func (n *Network) GeneratorBuses() []int {
	out := make([]int, len(n.Gens))
	for i, g := range n.Gens {
		out[i] = g.Bus
	}
	return out
}

// LoadBuses returns the bus indices carrying a load.
func (n *Network) LoadBuses() []int {
	out := make([]int, len(n.Loads))
	for i, l := range n.Loads {
		out[i] = l.Bus
	}
	return out
}

// SlackBuses returns the bus indices with an external-grid connection.
func (n *Network) SlackBuses() []int {
	out := make([]int, len(n.ExtGrids))
	for i, e := range n.ExtGrids {
		out[i] = e.Bus
	}
	return out
}

// Validate checks structural consistency of the network as solver input.
// Topology construction tolerates out-of-range branch endpoints (they are
// skipped and counted), but a solve on such a network is meaningless, so
// validation rejects them up front.
func (n *Network) Validate() error {
	nb := n.BusCount()
	if nb == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidNetwork, "network %q has no buses", n.Name)
	}
	for i, l := range n.Lines {
		if l.FromBus < 0 || l.FromBus >= nb || l.ToBus < 0 || l.ToBus >= nb {
			return apperrors.New(apperrors.ErrCodeInvalidNetwork,
				"line %d (%s) references bus outside [0, %d)", i, l.Name, nb)
		}
	}
	for i, t := range n.Trafos {
		if t.HVBus < 0 || t.HVBus >= nb || t.LVBus < 0 || t.LVBus >= nb {
			return apperrors.New(apperrors.ErrCodeInvalidNetwork,
				"trafo %d (%s) references bus outside [0, %d)", i, t.Name, nb)
		}
	}
	for i, g := range n.Gens {
		if g.Bus < 0 || g.Bus >= nb {
			return apperrors.New(apperrors.ErrCodeInvalidNetwork,
				"gen %d (%s) references bus %d outside [0, %d)", i, g.Name, g.Bus, nb)
		}
	}
	for i, l := range n.Loads {
		if l.Bus < 0 || l.Bus >= nb {
			return apperrors.New(apperrors.ErrCodeInvalidNetwork,
				"load %d (%s) references bus %d outside [0, %d)", i, l.Name, l.Bus, nb)
		}
	}
	if len(n.ExtGrids) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidNetwork, "network %q has no external grid (slack)", n.Name)
	}
	for i, e := range n.ExtGrids {
		if e.Bus < 0 || e.Bus >= nb {
			return apperrors.New(apperrors.ErrCodeInvalidNetwork,
				"ext_grid %d (%s) references bus %d outside [0, %d)", i, e.Name, e.Bus, nb)
		}
	}
	return nil
}

// MarshalNetwork encodes a network as indented JSON.
func MarshalNetwork(n *Network) ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}

// ReadNetwork decodes a network from r.
func ReadNetwork(r io.Reader) (*Network, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidNetwork, err, "decode network")
	}
	return &n, nil
}

// ReadNetworkFile loads a network from a JSON file.
func ReadNetworkFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadNetwork(f)
}
