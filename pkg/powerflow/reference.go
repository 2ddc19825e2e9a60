package powerflow

import (
	"context"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/network"
)

// Reference serves embedded reference solutions keyed by case name. It
// stands in for the external solver when working offline with built-in
// cases; any modification to the network structure makes the stored
// solution invalid and is rejected.
type Reference struct {
	solutions map[string]*network.Results
}

// NewReference creates a reference solver over the given solutions.
func NewReference(solutions map[string]*network.Results) *Reference {
	return &Reference{solutions: solutions}
}

// Solve implements Solver by looking up the stored solution for net.Name.
func (r *Reference) Solve(ctx context.Context, net *network.Network, opts Options) (*network.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	res, ok := r.solutions[net.Name]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeCaseNotFound,
			"no reference solution for case %q", net.Name)
	}
	if !res.Matches(net) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidNetwork,
			"case %q was modified; the reference solution no longer applies", net.Name)
	}
	return res, nil
}

// Ensure Reference implements Solver.
var _ Solver = (*Reference)(nil)
