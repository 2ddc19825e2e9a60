// Package powerflow defines the boundary to the AC power-flow solver.
//
// The Newton-Raphson solve itself lives outside this repository: input is a
// network description, output is the solved per-element tables. Two
// implementations of the Solver interface are provided — Exec, which hands
// the network to an external solver executable over a JSON pipe, and
// Reference, which serves embedded reference solutions for built-in cases
// so pipelines and tests can run without a solver installed.
package powerflow

import (
	"context"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/network"
)

// Default solver settings.
const (
	DefaultTolerance     = 1e-8
	DefaultMaxIterations = 10
)

// Options controls a power-flow solve.
type Options struct {
	// Tolerance is the convergence threshold on the maximum power mismatch (MVA).
	Tolerance float64 `json:"tolerance"`

	// MaxIterations bounds the Newton-Raphson iteration count.
	MaxIterations int `json:"max_iterations"`

	// FlatStart begins from a flat voltage profile instead of setpoints.
	FlatStart bool `json:"flat_start,omitempty"`
}

// DefaultOptions returns the standard solver settings.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Solver solves the AC power-flow equations for a network.
type Solver interface {
	// Solve computes the solved tables for net. The returned results carry
	// Converged=false together with a NOT_CONVERGED error when the
	// iteration failed to converge; any other failure returns a nil result.
	Solve(ctx context.Context, net *network.Network, opts Options) (*network.Results, error)
}

// NotConverged builds the typed error for a failed iteration.
func NotConverged(iterations int) error {
	return apperrors.New(apperrors.ErrCodeNotConverged,
		"power flow did not converge after %d iterations", iterations)
}

// IsNotConverged reports whether err is a convergence failure.
func IsNotConverged(err error) bool {
	return apperrors.Is(err, apperrors.ErrCodeNotConverged)
}
