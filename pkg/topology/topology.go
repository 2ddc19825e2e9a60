// Package topology derives a renderable graph from power-network tables:
// a typed adjacency matrix over bus indices, a circular 2-D layout, and a
// per-bus role classification.
//
// All operations are pure and stateless; every call rebuilds its output
// from the inputs. The package depends only on the structural tables, not
// on solver results.
package topology

import "math"

// =============================================================================
// Adjacency
// =============================================================================

// Connection is the kind of branch connecting two buses. It is int-backed
// so adjacency rows serialize as numeric JSON arrays rather than the
// base64 form encoding/json uses for byte slices.
type Connection int

const (
	// ConnectionNone means the buses are not directly connected.
	ConnectionNone Connection = iota

	// ConnectionLine marks a line branch.
	ConnectionLine

	// ConnectionTransformer marks a transformer branch.
	ConnectionTransformer
)

// String returns the connection kind name.
func (c Connection) String() string {
	switch c {
	case ConnectionLine:
		return "line"
	case ConnectionTransformer:
		return "trafo"
	default:
		return "none"
	}
}

// Branch is an undirected bus-index pair. For lines From/To are the
// from_bus/to_bus columns; for transformers the hv_bus/lv_bus columns.
type Branch struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// Adjacency is a square symmetric matrix over bus indices. The diagonal is
// always ConnectionNone.
type Adjacency [][]Connection

// BusCount returns the dimension of the matrix.
func (a Adjacency) BusCount() int { return len(a) }

// At returns the connection between buses i and j, or ConnectionNone if
// either index is out of range.
func (a Adjacency) At(i, j int) Connection {
	if i < 0 || i >= len(a) || j < 0 || j >= len(a) {
		return ConnectionNone
	}
	return a[i][j]
}

// BuildAdjacency builds the adjacency matrix for busCount buses from the
// line and transformer branch tables. Both directions of each in-range pair
// are written, so the result is symmetric. Branch endpoints outside
// [0, busCount) are skipped; the count of skipped branches is returned so
// callers can surface malformed input instead of relying on silence.
//
// When both a line and a transformer connect the same pair, the transformer
// wins regardless of input order. Duplicate branches of the same kind are
// idempotent.
func BuildAdjacency(busCount int, lines, trafos []Branch) (Adjacency, int) {
	adj := make(Adjacency, busCount)
	for i := range adj {
		adj[i] = make([]Connection, busCount)
	}

	skipped := 0
	for _, b := range lines {
		if !inRange(b, busCount) {
			skipped++
			continue
		}
		// Never demote a transformer connection to a line.
		if adj[b.From][b.To] != ConnectionTransformer {
			adj[b.From][b.To] = ConnectionLine
			adj[b.To][b.From] = ConnectionLine
		}
	}
	for _, b := range trafos {
		if !inRange(b, busCount) {
			skipped++
			continue
		}
		adj[b.From][b.To] = ConnectionTransformer
		adj[b.To][b.From] = ConnectionTransformer
	}
	return adj, skipped
}

func inRange(b Branch, busCount int) bool {
	return b.From >= 0 && b.From < busCount && b.To >= 0 && b.To < busCount
}

// =============================================================================
// Layout
// =============================================================================

// DefaultRadius is the layout circle radius used when no explicit radius
// is configured.
const DefaultRadius = 8.0

// Position is a 2-D layout coordinate.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// CircularLayout places busCount buses on a circle of the given radius
// centered at the origin, ordered by index at equal angular spacing.
// Bus i sits at angle 2π·i/busCount, so positions are deterministic and
// pairwise distinct. A busCount of zero yields an empty slice.
func CircularLayout(busCount int, radius float64) []Position {
	pos := make([]Position, busCount)
	for i := range pos {
		angle := 2 * math.Pi * float64(i) / float64(busCount)
		pos[i] = Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return pos
}

// =============================================================================
// Roles
// =============================================================================

// Role classifies a bus for rendering. Int-backed for the same reason as
// Connection: role slices must serialize as numeric JSON arrays.
type Role int

const (
	// RolePlain is a bus with no attached equipment.
	RolePlain Role = iota

	// RoleLoad marks a bus with at least one load.
	RoleLoad

	// RoleGenerator marks a bus with at least one generator.
	RoleGenerator

	// RoleSlack marks a bus with an external-grid connection.
	RoleSlack
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSlack:
		return "slack"
	case RoleGenerator:
		return "generator"
	case RoleLoad:
		return "load"
	default:
		return "plain"
	}
}

// ClassifyRoles assigns each bus exactly one role from the three equipment
// bus-index sets, resolved by priority slack > generator > load > plain.
// Set members outside [0, busCount) are ignored.
func ClassifyRoles(busCount int, generatorBuses, loadBuses, slackBuses []int) []Role {
	roles := make([]Role, busCount)
	assign := func(buses []int, r Role) {
		for _, b := range buses {
			if b < 0 || b >= busCount {
				continue
			}
			if r > roles[b] {
				roles[b] = r
			}
		}
	}
	assign(loadBuses, RoleLoad)
	assign(generatorBuses, RoleGenerator)
	assign(slackBuses, RoleSlack)
	return roles
}
