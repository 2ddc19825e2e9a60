package report

import (
	"math"
	"strings"
	"testing"

	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
)

// balancedCase builds a two-bus network whose fixture results balance
// exactly: 10.5 MW generation, 10 MW load, 0.5 MW line loss.
func balancedCase() (*network.Network, *network.Results) {
	net := &network.Network{
		Name: "two-bus",
		Buses: []network.Bus{
			{Name: "Source"}, {Name: "Sink"},
		},
		Lines:    []network.Line{{FromBus: 0, ToBus: 1}},
		Loads:    []network.Load{{Bus: 1, PMW: 10, QMVar: 2}},
		ExtGrids: []network.ExtGrid{{Bus: 0, VMPU: 1.0}},
	}
	res := &network.Results{
		Converged:  true,
		Iterations: 2,
		Buses: []network.BusResult{
			{VMPU: 1.00, VADegree: 0, PMW: -10.5, QMVar: -2.3},
			{VMPU: 0.97, VADegree: -2.1, PMW: 10, QMVar: 2},
		},
		Lines: []network.LineResult{
			{PFromMW: 10.5, QFromMVar: 2.3, PToMW: -10, QToMVar: -2, PlMW: 0.5, QlMVar: 0.3, LoadingPercent: 42},
		},
		ExtGrids: []network.ExtGridResult{{PMW: 10.5, QMVar: 2.3}},
	}
	return net, res
}

func TestSummarize(t *testing.T) {
	net, res := balancedCase()
	s := Summarize(net, res)

	if !s.Converged || s.Iterations != 2 {
		t.Errorf("status = %v/%d, want converged in 2 iterations", s.Converged, s.Iterations)
	}
	if s.TotalLoadMW != 10 || s.ExtGridMW != 10.5 {
		t.Errorf("load/injection = %.2f/%.2f, want 10/10.5", s.TotalLoadMW, s.ExtGridMW)
	}
	if s.TotalLossMW != 0.5 {
		t.Errorf("TotalLossMW = %.3f, want 0.5", s.TotalLossMW)
	}
	if math.Abs(s.BalanceMW) > 1e-9 {
		t.Errorf("BalanceMW = %g, want 0", s.BalanceMW)
	}
	if s.MinVMBus != 1 || s.MaxVMBus != 0 {
		t.Errorf("voltage extrema buses = %d/%d, want 1/0", s.MinVMBus, s.MaxVMBus)
	}
	if want := (1.00 + 0.97) / 2; math.Abs(s.MeanVMPU-want) > 1e-9 {
		t.Errorf("MeanVMPU = %g, want %g", s.MeanVMPU, want)
	}
	if !s.VoltageBand() {
		t.Error("VoltageBand = false for voltages within [0.9, 1.1]")
	}
}

func TestSummarizeIEEE14(t *testing.T) {
	s := Summarize(ieee14.Case(), ieee14.Solution())

	if s.BusCount != 14 || s.LineCount != 15 || s.TrafoCount != 5 {
		t.Errorf("element counts = %d/%d/%d, want 14/15/5", s.BusCount, s.LineCount, s.TrafoCount)
	}
	if math.Abs(s.TotalLoadMW-259.0) > 1e-9 {
		t.Errorf("TotalLoadMW = %.3f, want 259.000", s.TotalLoadMW)
	}
	if math.Abs(s.BalanceMW) > 0.05 {
		t.Errorf("BalanceMW = %.3f, want < 0.05 residual", s.BalanceMW)
	}
	if !s.VoltageBand() {
		t.Errorf("voltages out of band: min %.3f max %.3f", s.MinVMPU, s.MaxVMPU)
	}
}

func TestTables(t *testing.T) {
	net, res := balancedCase()
	tables := Tables(net, res)

	if len(tables) != 5 {
		t.Fatalf("table count = %d, want 5", len(tables))
	}

	volts := tables[0]
	if len(volts.Rows) != 2 {
		t.Fatalf("voltage rows = %d, want 2", len(volts.Rows))
	}
	if volts.Rows[1][1] != "Sink" || volts.Rows[1][2] != "0.9700" {
		t.Errorf("voltage row = %v", volts.Rows[1])
	}

	loading := tables[2]
	if loading.Rows[0][4] != "42.00" {
		t.Errorf("loading row = %v", loading.Rows[0])
	}
	// Trafo table present but empty for a trafo-less network.
	if len(tables[4].Rows) != 0 {
		t.Errorf("trafo loss rows = %d, want 0", len(tables[4].Rows))
	}
}

func TestRenderSummary(t *testing.T) {
	net, res := balancedCase()
	out := RenderSummary(Summarize(net, res))

	for _, want := range []string{"two-bus", "converged", "10.000 MW", "0.500 MW"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTable(t *testing.T) {
	net, res := balancedCase()
	out := Render(BusVoltages(net, res))

	for _, want := range []string{"Bus voltages", "Vm (pu)", "Source", "Sink"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}
