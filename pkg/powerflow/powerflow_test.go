package powerflow

import (
	"context"
	"testing"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
)

func TestRequestResponseCodec(t *testing.T) {
	req := &Request{Network: ieee14.Case(), Options: DefaultOptions()}

	data, err := EncodeRequest(req)
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}
	got, err := DecodeRequest(data)
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if got.Network.Name != ieee14.CaseName {
		t.Errorf("network name = %q, want %q", got.Network.Name, ieee14.CaseName)
	}
	if got.Options.Tolerance != DefaultTolerance {
		t.Errorf("tolerance = %g, want %g", got.Options.Tolerance, DefaultTolerance)
	}

	resp := &Response{Results: ieee14.Solution()}
	data, err = EncodeResponse(resp)
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}
	gotResp, err := DecodeResponse(data)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if !gotResp.Results.Converged {
		t.Error("converged flag lost in round trip")
	}
	if len(gotResp.Results.Buses) != 14 {
		t.Errorf("bus results = %d, want 14", len(gotResp.Results.Buses))
	}
}

func TestReferenceSolver(t *testing.T) {
	solver := NewReference(map[string]*network.Results{
		ieee14.CaseName: ieee14.Solution(),
	})

	res, err := solver.Solve(context.Background(), ieee14.Case(), DefaultOptions())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Converged {
		t.Error("reference solution should be converged")
	}

	// Unknown case.
	unknown := ieee14.Case()
	unknown.Name = "nope"
	_, err = solver.Solve(context.Background(), unknown, DefaultOptions())
	if !apperrors.Is(err, apperrors.ErrCodeCaseNotFound) {
		t.Errorf("unknown case error = %v, want CASE_NOT_FOUND", err)
	}

	// Structurally modified case.
	mutated := ieee14.Case()
	mutated.Lines = mutated.Lines[:10]
	_, err = solver.Solve(context.Background(), mutated, DefaultOptions())
	if !apperrors.Is(err, apperrors.ErrCodeInvalidNetwork) {
		t.Errorf("mutated case error = %v, want INVALID_NETWORK", err)
	}

	// Out-of-range branch endpoint: table sizes still match the stored
	// solution, so validation has to catch it before the lookup.
	invalid := ieee14.Case()
	invalid.Lines[0].ToBus = 99
	_, err = solver.Solve(context.Background(), invalid, DefaultOptions())
	if !apperrors.Is(err, apperrors.ErrCodeInvalidNetwork) {
		t.Errorf("invalid endpoint error = %v, want INVALID_NETWORK", err)
	}
}

func TestExecRequiresCommand(t *testing.T) {
	var e Exec
	_, err := e.Solve(context.Background(), ieee14.Case(), DefaultOptions())
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestNotConverged(t *testing.T) {
	err := NotConverged(10)
	if !IsNotConverged(err) {
		t.Error("IsNotConverged = false for NotConverged error")
	}
	if IsNotConverged(apperrors.New(apperrors.ErrCodeSolverFailed, "boom")) {
		t.Error("IsNotConverged = true for unrelated error")
	}
}
