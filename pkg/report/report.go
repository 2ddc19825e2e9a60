// Package report turns solved power-flow tables into human-readable
// summaries and terminal tables.
//
// The row builders are pure functions over the network and result tables;
// the lipgloss rendering on top of them is display-only. File export of
// result tables is deliberately not provided here — the terminal output is
// the product.
package report

import (
	"fmt"
	"math"

	"github.com/mfeldt/gridviz/pkg/network"
)

// Summary aggregates a solved case into the headline numbers.
type Summary struct {
	Case       string `json:"case"`
	Converged  bool   `json:"converged"`
	Iterations int    `json:"iterations"`

	BusCount     int `json:"bus_count"`
	LineCount    int `json:"line_count"`
	TrafoCount   int `json:"trafo_count"`
	GenCount     int `json:"gen_count"`
	LoadCount    int `json:"load_count"`
	ExtGridCount int `json:"ext_grid_count"`

	TotalLoadMW   float64 `json:"total_load_mw"`
	TotalLoadMVar float64 `json:"total_load_mvar"`
	ExtGridMW     float64 `json:"ext_grid_mw"`
	GenMW         float64 `json:"gen_mw"`

	LineLossMW    float64 `json:"line_loss_mw"`
	TrafoLossMW   float64 `json:"trafo_loss_mw"`
	TotalLossMW   float64 `json:"total_loss_mw"`
	TotalLossMVar float64 `json:"total_loss_mvar"`

	// BalanceMW is generation minus load minus losses; near zero for a
	// consistent solution.
	BalanceMW float64 `json:"balance_mw"`

	MinVMPU  float64 `json:"min_vm_pu"`
	MaxVMPU  float64 `json:"max_vm_pu"`
	MeanVMPU float64 `json:"mean_vm_pu"`
	MinVMBus int     `json:"min_vm_bus"`
	MaxVMBus int     `json:"max_vm_bus"`
}

// VoltageBand reports whether every bus voltage lies within the normal
// operating band [0.9, 1.1] p.u.
func (s Summary) VoltageBand() bool {
	return s.MinVMPU > 0.9 && s.MaxVMPU < 1.1
}

// Summarize computes the summary for a solved network.
func Summarize(net *network.Network, res *network.Results) Summary {
	s := Summary{
		Case:         net.Name,
		Converged:    res.Converged,
		Iterations:   res.Iterations,
		BusCount:     len(net.Buses),
		LineCount:    len(net.Lines),
		TrafoCount:   len(net.Trafos),
		GenCount:     len(net.Gens),
		LoadCount:    len(net.Loads),
		ExtGridCount: len(net.ExtGrids),
	}

	for _, l := range net.Loads {
		s.TotalLoadMW += l.PMW
		s.TotalLoadMVar += l.QMVar
	}
	for _, e := range res.ExtGrids {
		s.ExtGridMW += e.PMW
	}
	for _, g := range res.Gens {
		s.GenMW += g.PMW
	}
	for _, l := range res.Lines {
		s.LineLossMW += l.PlMW
		s.TotalLossMVar += l.QlMVar
	}
	for _, t := range res.Trafos {
		s.TrafoLossMW += t.PlMW
		s.TotalLossMVar += t.QlMVar
	}
	s.TotalLossMW = s.LineLossMW + s.TrafoLossMW
	s.BalanceMW = s.ExtGridMW + s.GenMW - s.TotalLoadMW - s.TotalLossMW

	if len(res.Buses) > 0 {
		s.MinVMPU = math.Inf(1)
		s.MaxVMPU = math.Inf(-1)
		var sum float64
		for i, b := range res.Buses {
			sum += b.VMPU
			if b.VMPU < s.MinVMPU {
				s.MinVMPU = b.VMPU
				s.MinVMBus = i
			}
			if b.VMPU > s.MaxVMPU {
				s.MaxVMPU = b.VMPU
				s.MaxVMBus = i
			}
		}
		s.MeanVMPU = sum / float64(len(res.Buses))
	}
	return s
}

// =============================================================================
// Table Rows
// =============================================================================

// A Table is a header row plus data rows, ready for any renderer.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// BusVoltages builds the per-bus voltage table.
func BusVoltages(net *network.Network, res *network.Results) Table {
	t := Table{
		Title:   "Bus voltages",
		Headers: []string{"Bus", "Name", "Vm (pu)", "Va (deg)"},
	}
	for i, b := range res.Buses {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", i),
			net.Buses[i].Name,
			fmt.Sprintf("%.4f", b.VMPU),
			fmt.Sprintf("%.2f", b.VADegree),
		})
	}
	return t
}

// BusPower builds the per-bus power injection table.
func BusPower(net *network.Network, res *network.Results) Table {
	t := Table{
		Title:   "Bus power",
		Headers: []string{"Bus", "Name", "P (MW)", "Q (MVar)"},
	}
	for i, b := range res.Buses {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", i),
			net.Buses[i].Name,
			fmt.Sprintf("%.2f", b.PMW),
			fmt.Sprintf("%.2f", b.QMVar),
		})
	}
	return t
}

// LineLoading builds the per-line loading table with from-side flows.
func LineLoading(net *network.Network, res *network.Results) Table {
	t := Table{
		Title:   "Line loading",
		Headers: []string{"From", "From name", "To", "To name", "Loading (%)", "P (MW)", "Q (MVar)"},
	}
	for i, l := range res.Lines {
		line := net.Lines[i]
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", line.FromBus),
			net.Buses[line.FromBus].Name,
			fmt.Sprintf("%d", line.ToBus),
			net.Buses[line.ToBus].Name,
			fmt.Sprintf("%.2f", l.LoadingPercent),
			fmt.Sprintf("%.2f", l.PFromMW),
			fmt.Sprintf("%.2f", l.QFromMVar),
		})
	}
	return t
}

// LineLosses builds the per-line loss table.
func LineLosses(net *network.Network, res *network.Results) Table {
	t := Table{
		Title:   "Line losses",
		Headers: []string{"From", "From name", "To", "To name", "Pl (MW)", "Ql (MVar)"},
	}
	for i, l := range res.Lines {
		line := net.Lines[i]
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", line.FromBus),
			net.Buses[line.FromBus].Name,
			fmt.Sprintf("%d", line.ToBus),
			net.Buses[line.ToBus].Name,
			fmt.Sprintf("%.4f", l.PlMW),
			fmt.Sprintf("%.4f", l.QlMVar),
		})
	}
	return t
}

// TrafoLosses builds the per-transformer loss table.
func TrafoLosses(net *network.Network, res *network.Results) Table {
	t := Table{
		Title:   "Transformer losses",
		Headers: []string{"HV", "HV name", "LV", "LV name", "Pl (MW)", "Ql (MVar)"},
	}
	for i, tr := range res.Trafos {
		trafo := net.Trafos[i]
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", trafo.HVBus),
			net.Buses[trafo.HVBus].Name,
			fmt.Sprintf("%d", trafo.LVBus),
			net.Buses[trafo.LVBus].Name,
			fmt.Sprintf("%.4f", tr.PlMW),
			fmt.Sprintf("%.4f", tr.QlMVar),
		})
	}
	return t
}

// Tables builds all result tables in display order.
func Tables(net *network.Network, res *network.Results) []Table {
	return []Table{
		BusVoltages(net, res),
		BusPower(net, res),
		LineLoading(net, res),
		LineLosses(net, res),
		TrafoLosses(net, res),
	}
}
