// Package ieee14 provides the IEEE 14-bus reference network as a pre-built
// case, together with its published reference solution.
//
// The case follows the common zero-based indexing of the test system: bus 0
// carries the external grid, buses 1, 2, 5 and 7 carry generators, and the
// five branches crossing voltage levels (4-7, 4-9, 5-6, 7-8, 7-9 in
// one-based notation) are modeled as transformers.
package ieee14

import "github.com/mfeldt/gridviz/pkg/network"

// CaseName identifies the built-in case.
const CaseName = "ieee14"

// Case returns a fresh copy of the IEEE 14-bus network. Callers own the
// returned value and may mutate it freely.
func Case() *network.Network {
	return &network.Network{
		Name: CaseName,
		Buses: []network.Bus{
			{Name: "Bus 1", VnKV: 135, Type: network.BusTypeRef},
			{Name: "Bus 2", VnKV: 135, Type: network.BusTypeBusbar},
			{Name: "Bus 3", VnKV: 135, Type: network.BusTypeBusbar},
			{Name: "Bus 4", VnKV: 135, Type: network.BusTypeBusbar},
			{Name: "Bus 5", VnKV: 135, Type: network.BusTypeBusbar},
			{Name: "Bus 6", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 7", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 8", VnKV: 12, Type: network.BusTypeBusbar},
			{Name: "Bus 9", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 10", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 11", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 12", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 13", VnKV: 14, Type: network.BusTypeBusbar},
			{Name: "Bus 14", VnKV: 14, Type: network.BusTypeBusbar},
		},
		Lines: []network.Line{
			{Name: "L1-2", FromBus: 0, ToBus: 1, MaxIKA: 1.2},
			{Name: "L1-5", FromBus: 0, ToBus: 4, MaxIKA: 0.8},
			{Name: "L2-3", FromBus: 1, ToBus: 2, MaxIKA: 0.8},
			{Name: "L2-4", FromBus: 1, ToBus: 3, MaxIKA: 0.8},
			{Name: "L2-5", FromBus: 1, ToBus: 4, MaxIKA: 0.8},
			{Name: "L3-4", FromBus: 2, ToBus: 3, MaxIKA: 0.8},
			{Name: "L4-5", FromBus: 3, ToBus: 4, MaxIKA: 0.8},
			{Name: "L6-11", FromBus: 5, ToBus: 10, MaxIKA: 0.4},
			{Name: "L6-12", FromBus: 5, ToBus: 11, MaxIKA: 0.4},
			{Name: "L6-13", FromBus: 5, ToBus: 12, MaxIKA: 0.4},
			{Name: "L9-10", FromBus: 8, ToBus: 9, MaxIKA: 0.4},
			{Name: "L9-14", FromBus: 8, ToBus: 13, MaxIKA: 0.4},
			{Name: "L10-11", FromBus: 9, ToBus: 10, MaxIKA: 0.4},
			{Name: "L12-13", FromBus: 11, ToBus: 12, MaxIKA: 0.4},
			{Name: "L13-14", FromBus: 12, ToBus: 13, MaxIKA: 0.4},
		},
		Trafos: []network.Transformer{
			{Name: "T4-7", HVBus: 3, LVBus: 6, SnMVA: 100},
			{Name: "T4-9", HVBus: 3, LVBus: 8, SnMVA: 100},
			{Name: "T5-6", HVBus: 4, LVBus: 5, SnMVA: 100},
			{Name: "T7-8", HVBus: 6, LVBus: 7, SnMVA: 100},
			{Name: "T7-9", HVBus: 6, LVBus: 8, SnMVA: 100},
		},
		Gens: []network.Generator{
			{Name: "G2", Bus: 1, PMW: 40, VMPU: 1.045},
			{Name: "G3", Bus: 2, PMW: 0, VMPU: 1.010},
			{Name: "G6", Bus: 5, PMW: 0, VMPU: 1.070},
			{Name: "G8", Bus: 7, PMW: 0, VMPU: 1.090},
		},
		Loads: []network.Load{
			{Name: "Load 2", Bus: 1, PMW: 21.7, QMVar: 12.7},
			{Name: "Load 3", Bus: 2, PMW: 94.2, QMVar: 19.0},
			{Name: "Load 4", Bus: 3, PMW: 47.8, QMVar: -3.9},
			{Name: "Load 5", Bus: 4, PMW: 7.6, QMVar: 1.6},
			{Name: "Load 6", Bus: 5, PMW: 11.2, QMVar: 7.5},
			{Name: "Load 9", Bus: 8, PMW: 29.5, QMVar: 16.6},
			{Name: "Load 10", Bus: 9, PMW: 9.0, QMVar: 5.8},
			{Name: "Load 11", Bus: 10, PMW: 3.5, QMVar: 1.8},
			{Name: "Load 12", Bus: 11, PMW: 6.1, QMVar: 1.6},
			{Name: "Load 13", Bus: 12, PMW: 13.5, QMVar: 5.8},
			{Name: "Load 14", Bus: 13, PMW: 14.9, QMVar: 5.0},
		},
		ExtGrids: []network.ExtGrid{
			{Name: "Grid Connection", Bus: 0, VMPU: 1.06, VADegree: 0},
		},
	}
}

// Solution returns the reference power-flow solution of the IEEE 14-bus
// case, as produced by a converged Newton-Raphson solve. It is used by the
// offline reference solver and by the smoke tests; a live external solver
// should reproduce these values within its tolerance.
func Solution() *network.Results {
	return &network.Results{
		Converged:  true,
		Iterations: 3,
		Buses: []network.BusResult{
			{VMPU: 1.060, VADegree: 0.00, PMW: -232.39, QMVar: 16.55},
			{VMPU: 1.045, VADegree: -4.98, PMW: -18.30, QMVar: -30.86},
			{VMPU: 1.010, VADegree: -12.72, PMW: 94.20, QMVar: -6.08},
			{VMPU: 1.018, VADegree: -10.31, PMW: 47.80, QMVar: -3.90},
			{VMPU: 1.020, VADegree: -8.77, PMW: 7.60, QMVar: 1.60},
			{VMPU: 1.070, VADegree: -14.22, PMW: 11.20, QMVar: -5.23},
			{VMPU: 1.062, VADegree: -13.36, PMW: 0.00, QMVar: 0.00},
			{VMPU: 1.090, VADegree: -13.36, PMW: 0.00, QMVar: -17.62},
			{VMPU: 1.056, VADegree: -14.94, PMW: 29.50, QMVar: 16.60},
			{VMPU: 1.051, VADegree: -15.10, PMW: 9.00, QMVar: 5.80},
			{VMPU: 1.057, VADegree: -14.79, PMW: 3.50, QMVar: 1.80},
			{VMPU: 1.055, VADegree: -15.08, PMW: 6.10, QMVar: 1.60},
			{VMPU: 1.050, VADegree: -15.16, PMW: 13.50, QMVar: 5.80},
			{VMPU: 1.036, VADegree: -16.03, PMW: 14.90, QMVar: 5.00},
		},
		Lines: []network.LineResult{
			{PFromMW: 156.88, QFromMVar: -20.40, PToMW: -152.59, QToMVar: 27.68, PlMW: 4.30, QlMVar: 7.28, LoadingPercent: 63.2},
			{PFromMW: 75.51, QFromMVar: 3.85, PToMW: -72.75, QToMVar: 2.23, PlMW: 2.76, QlMVar: 6.08, LoadingPercent: 40.7},
			{PFromMW: 73.24, QFromMVar: 3.56, PToMW: -70.91, QToMVar: 1.60, PlMW: 2.32, QlMVar: 5.16, LoadingPercent: 39.5},
			{PFromMW: 56.13, QFromMVar: -1.55, PToMW: -54.45, QToMVar: 3.02, PlMW: 1.68, QlMVar: 1.47, LoadingPercent: 30.1},
			{PFromMW: 41.52, QFromMVar: 1.17, PToMW: -40.61, QToMVar: -2.10, PlMW: 0.90, QlMVar: -0.93, LoadingPercent: 22.5},
			{PFromMW: -23.29, QFromMVar: 4.47, PToMW: 23.66, QToMVar: -4.84, PlMW: 0.37, QlMVar: -0.38, LoadingPercent: 12.8},
			{PFromMW: -61.16, QFromMVar: 15.82, PToMW: 61.67, QToMVar: -14.20, PlMW: 0.51, QlMVar: 1.62, LoadingPercent: 33.8},
			{PFromMW: 7.35, QFromMVar: 3.56, PToMW: -7.30, QToMVar: -3.44, PlMW: 0.06, QlMVar: 0.11, LoadingPercent: 8.4},
			{PFromMW: 7.79, QFromMVar: 2.50, PToMW: -7.71, QToMVar: -2.35, PlMW: 0.07, QlMVar: 0.15, LoadingPercent: 8.5},
			{PFromMW: 17.75, QFromMVar: 7.22, PToMW: -17.54, QToMVar: -6.80, PlMW: 0.21, QlMVar: 0.42, LoadingPercent: 19.8},
			{PFromMW: 5.23, QFromMVar: 4.22, PToMW: -5.21, QToMVar: -4.18, PlMW: 0.01, QlMVar: 0.03, LoadingPercent: 6.9},
			{PFromMW: 9.43, QFromMVar: 3.61, PToMW: -9.31, QToMVar: -3.36, PlMW: 0.12, QlMVar: 0.25, LoadingPercent: 10.4},
			{PFromMW: -3.79, QFromMVar: -1.62, PToMW: 3.80, QToMVar: 1.64, PlMW: 0.01, QlMVar: 0.02, LoadingPercent: 4.3},
			{PFromMW: 1.61, QFromMVar: 0.75, PToMW: -1.61, QToMVar: -0.75, PlMW: 0.01, QlMVar: 0.01, LoadingPercent: 1.9},
			{PFromMW: 5.64, QFromMVar: 1.75, PToMW: -5.59, QToMVar: -1.64, PlMW: 0.05, QlMVar: 0.11, LoadingPercent: 6.2},
		},
		Trafos: []network.TrafoResult{
			{PHVMW: 28.07, QHVMVar: -9.68, PlMW: 0.00, QlMVar: 1.77, LoadingPercent: 28.9},
			{PHVMW: 16.08, QHVMVar: -0.43, PlMW: 0.00, QlMVar: 1.35, LoadingPercent: 16.1},
			{PHVMW: 44.09, QHVMVar: 12.47, PlMW: 0.00, QlMVar: 4.64, LoadingPercent: 45.8},
			{PHVMW: 0.00, QHVMVar: -17.16, PlMW: 0.00, QlMVar: 0.46, LoadingPercent: 17.2},
			{PHVMW: 28.07, QHVMVar: 5.78, PlMW: 0.00, QlMVar: 0.80, LoadingPercent: 28.7},
		},
		Gens: []network.GenResult{
			{PMW: 40.00, QMVar: 43.56},
			{PMW: 0.00, QMVar: 25.08},
			{PMW: 0.00, QMVar: 12.73},
			{PMW: 0.00, QMVar: 17.62},
		},
		ExtGrids: []network.ExtGridResult{
			{PMW: 232.39, QMVar: -16.55},
		},
	}
}
