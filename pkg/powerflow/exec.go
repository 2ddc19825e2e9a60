package powerflow

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/network"
)

// DefaultExecTimeout bounds a single external solve.
const DefaultExecTimeout = 2 * time.Minute

// Request is the JSON document written to the external solver's stdin.
type Request struct {
	Network *network.Network `json:"network"`
	Options Options          `json:"options"`
}

// Response is the JSON document expected on the external solver's stdout.
// Error carries a solver-side failure message; an unconverged solve sets
// Results.Converged to false instead.
type Response struct {
	Results *network.Results `json:"results"`
	Error   string           `json:"error,omitempty"`
}

// Exec invokes an external power-flow solver executable. The request is
// written to stdin, the response read from stdout; stderr is passed through
// to the error message on failure.
type Exec struct {
	// Command is the solver argv, e.g. ["pfsolve", "--format=json"].
	Command []string

	// Timeout bounds one solve. Zero means DefaultExecTimeout.
	Timeout time.Duration
}

// NewExec creates an external-process solver for the given argv.
func NewExec(command []string) *Exec {
	return &Exec{Command: command}
}

// Solve implements Solver by running the external command once.
func (e *Exec) Solve(ctx context.Context, net *network.Network, opts Options) (*network.Results, error) {
	if len(e.Command) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "no solver command configured")
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultExecTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input, err := EncodeRequest(&Request{Network: net, Options: opts})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode solver request")
	}

	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeSolverFailed, err, "%s: %s", e.Command[0], msg)
	}

	resp, err := DecodeResponse(stdout.Bytes())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeSolverFailed, err, "decode solver response")
	}
	if resp.Error != "" {
		return nil, apperrors.New(apperrors.ErrCodeSolverFailed, "%s", resp.Error)
	}
	if resp.Results == nil {
		return nil, apperrors.New(apperrors.ErrCodeSolverFailed, "solver returned no results")
	}
	if !resp.Results.Matches(net) {
		return nil, apperrors.New(apperrors.ErrCodeSolverFailed,
			"solver result tables do not match the network shape")
	}
	if !resp.Results.Converged {
		return resp.Results, NotConverged(resp.Results.Iterations)
	}
	return resp.Results, nil
}

// EncodeRequest serializes a solver request.
func EncodeRequest(r *Request) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRequest parses a solver request, for solver-side implementations.
func DecodeRequest(data []byte) (*Request, error) {
	var r Request
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeResponse serializes a solver response.
func EncodeResponse(r *Response) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeResponse parses a solver response.
func DecodeResponse(data []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Ensure Exec implements Solver.
var _ Solver = (*Exec)(nil)
