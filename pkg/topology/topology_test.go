package topology

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildAdjacency(t *testing.T) {
	tests := []struct {
		name        string
		busCount    int
		lines       []Branch
		trafos      []Branch
		want        Adjacency
		wantSkipped int
	}{
		{
			name:     "Empty",
			busCount: 0,
			want:     Adjacency{},
		},
		{
			name:     "SingleBus",
			busCount: 1,
			want:     Adjacency{{ConnectionNone}},
		},
		{
			name:     "LineAndTrafo",
			busCount: 3,
			lines:    []Branch{{From: 0, To: 1}},
			trafos:   []Branch{{From: 1, To: 2}},
			want: Adjacency{
				{ConnectionNone, ConnectionLine, ConnectionNone},
				{ConnectionLine, ConnectionNone, ConnectionTransformer},
				{ConnectionNone, ConnectionTransformer, ConnectionNone},
			},
		},
		{
			name:        "OutOfRangeSkipped",
			busCount:    2,
			lines:       []Branch{{From: 0, To: 5}},
			want:        Adjacency{{ConnectionNone, ConnectionNone}, {ConnectionNone, ConnectionNone}},
			wantSkipped: 1,
		},
		{
			name:        "NegativeIndexSkipped",
			busCount:    2,
			lines:       []Branch{{From: -1, To: 1}},
			trafos:      []Branch{{From: 0, To: 2}},
			want:        Adjacency{{ConnectionNone, ConnectionNone}, {ConnectionNone, ConnectionNone}},
			wantSkipped: 2,
		},
		{
			name:     "TrafoWinsOverLine",
			busCount: 2,
			lines:    []Branch{{From: 0, To: 1}},
			trafos:   []Branch{{From: 0, To: 1}},
			want: Adjacency{
				{ConnectionNone, ConnectionTransformer},
				{ConnectionTransformer, ConnectionNone},
			},
		},
		{
			name:     "DuplicateLinesIdempotent",
			busCount: 2,
			lines:    []Branch{{From: 0, To: 1}, {From: 1, To: 0}},
			want: Adjacency{
				{ConnectionNone, ConnectionLine},
				{ConnectionLine, ConnectionNone},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := BuildAdjacency(tt.busCount, tt.lines, tt.trafos)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildAdjacency = %v, want %v", got, tt.want)
			}
			if skipped != tt.wantSkipped {
				t.Errorf("skipped = %d, want %d", skipped, tt.wantSkipped)
			}
		})
	}
}

// Transformer precedence must not depend on input order: a later line must
// not demote an existing transformer connection.
func TestBuildAdjacencyTrafoPrecedenceOrderIndependent(t *testing.T) {
	a1, _ := BuildAdjacency(2, []Branch{{From: 0, To: 1}}, []Branch{{From: 0, To: 1}})
	a2, _ := BuildAdjacency(2, []Branch{{From: 1, To: 0}}, []Branch{{From: 1, To: 0}})
	if a1.At(0, 1) != ConnectionTransformer || a2.At(0, 1) != ConnectionTransformer {
		t.Errorf("transformer should win for the pair: got %v and %v", a1.At(0, 1), a2.At(0, 1))
	}
}

func TestBuildAdjacencySymmetry(t *testing.T) {
	lines := []Branch{{From: 0, To: 1}, {From: 2, To: 4}, {From: 1, To: 3}}
	trafos := []Branch{{From: 3, To: 4}, {From: 0, To: 2}}

	adj, skipped := BuildAdjacency(5, lines, trafos)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	for i := 0; i < 5; i++ {
		if adj.At(i, i) != ConnectionNone {
			t.Errorf("diagonal [%d][%d] = %v, want none", i, i, adj.At(i, i))
		}
		for j := 0; j < 5; j++ {
			if adj.At(i, j) != adj.At(j, i) {
				t.Errorf("asymmetric at (%d,%d): %v != %v", i, j, adj.At(i, j), adj.At(j, i))
			}
		}
	}
}

func TestCircularLayout(t *testing.T) {
	tests := []struct {
		name     string
		busCount int
		radius   float64
	}{
		{name: "Single", busCount: 1, radius: 8},
		{name: "Three", busCount: 3, radius: 8},
		{name: "Fourteen", busCount: 14, radius: 5},
	}

	const tol = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := CircularLayout(tt.busCount, tt.radius)
			if len(pos) != tt.busCount {
				t.Fatalf("len = %d, want %d", len(pos), tt.busCount)
			}
			seen := make(map[Position]bool)
			for i, p := range pos {
				d := math.Hypot(p.X, p.Y)
				if math.Abs(d-tt.radius) > tol {
					t.Errorf("bus %d at distance %g, want %g", i, d, tt.radius)
				}
				if seen[p] {
					t.Errorf("bus %d coincides with an earlier bus at %v", i, p)
				}
				seen[p] = true
			}
		})
	}
}

func TestCircularLayoutBoundaries(t *testing.T) {
	if pos := CircularLayout(0, 8); len(pos) != 0 {
		t.Errorf("busCount=0: len = %d, want 0", len(pos))
	}

	pos := CircularLayout(1, 8)
	if math.Abs(pos[0].X-8) > 1e-9 || math.Abs(pos[0].Y) > 1e-9 {
		t.Errorf("busCount=1: position = %v, want (8, 0)", pos[0])
	}
}

func TestCircularLayoutAngles(t *testing.T) {
	// 3 buses: 0°, 120°, 240°.
	pos := CircularLayout(3, 8)
	wantAngles := []float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3}
	for i, want := range wantAngles {
		got := math.Atan2(pos[i].Y, pos[i].X)
		if got < 0 {
			got += 2 * math.Pi
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("bus %d angle = %g rad, want %g rad", i, got, want)
		}
	}
}

func TestClassifyRoles(t *testing.T) {
	tests := []struct {
		name     string
		busCount int
		gens     []int
		loads    []int
		slacks   []int
		want     []Role
	}{
		{
			name:     "AllPlain",
			busCount: 2,
			want:     []Role{RolePlain, RolePlain},
		},
		{
			name:     "Disjoint",
			busCount: 4,
			gens:     []int{1},
			loads:    []int{2},
			slacks:   []int{0},
			want:     []Role{RoleSlack, RoleGenerator, RoleLoad, RolePlain},
		},
		{
			name:     "SlackBeatsEverything",
			busCount: 1,
			gens:     []int{0},
			loads:    []int{0},
			slacks:   []int{0},
			want:     []Role{RoleSlack},
		},
		{
			name:     "GeneratorBeatsLoad",
			busCount: 1,
			gens:     []int{0},
			loads:    []int{0},
			want:     []Role{RoleGenerator},
		},
		{
			name:     "OutOfRangeIgnored",
			busCount: 2,
			gens:     []int{5},
			loads:    []int{-1},
			want:     []Role{RolePlain, RolePlain},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRoles(tt.busCount, tt.gens, tt.loads, tt.slacks)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassifyRoles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	lines := []Branch{{From: 0, To: 1}}
	trafos := []Branch{{From: 1, To: 2}}

	a1, s1 := BuildAdjacency(3, lines, trafos)
	a2, s2 := BuildAdjacency(3, lines, trafos)
	if !reflect.DeepEqual(a1, a2) || s1 != s2 {
		t.Error("BuildAdjacency is not deterministic for identical inputs")
	}

	p1 := CircularLayout(3, 8)
	p2 := CircularLayout(3, 8)
	if !reflect.DeepEqual(p1, p2) {
		t.Error("CircularLayout is not deterministic for identical inputs")
	}

	r1 := ClassifyRoles(3, []int{1}, []int{2}, []int{0})
	r2 := ClassifyRoles(3, []int{1}, []int{2}, []int{0})
	if !reflect.DeepEqual(r1, r2) {
		t.Error("ClassifyRoles is not deterministic for identical inputs")
	}
}
