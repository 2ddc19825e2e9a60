package pipeline

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/cache"
	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/render"
	"github.com/mfeldt/gridviz/pkg/report"
	"github.com/mfeldt/gridviz/pkg/topology"
)

// Stats records per-stage durations of one execution.
type Stats struct {
	LoadTime   time.Duration
	SolveTime  time.Duration
	GraphTime  time.Duration
	RenderTime time.Duration
}

// Result is the output of one pipeline execution. Results and Summary are
// nil/zero when the solve stage was skipped.
type Result struct {
	Network   *network.Network
	Results   *network.Results
	Summary   report.Summary
	Graph     *topology.Graph
	Artifacts map[string][]byte

	Stats         Stats
	SolveCacheHit bool
}

// Runner executes pipelines against a solve cache. It is stateless apart
// from the cache and logger, so one Runner can serve concurrent callers
// with different options.
type Runner struct {
	Cache cache.Cache
}

// NewRunner creates a runner. A nil cache disables caching.
func NewRunner(c cache.Cache) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{Cache: c}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs resolve → solve → graph → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: resolve the network.
	loadStart := time.Now()
	net, err := r.resolveNetwork(opts)
	if err != nil {
		return nil, err
	}
	result.Network = net
	result.Stats.LoadTime = time.Since(loadStart)
	logger.Info("resolved network",
		"case", net.Name,
		"buses", net.BusCount(),
		"branches", len(net.Lines)+len(net.Trafos))

	// Stage 2: solve.
	if !opts.SkipSolve {
		solveStart := time.Now()
		res, hit, err := r.solve(ctx, net, opts)
		if err != nil {
			return nil, err
		}
		result.Results = res
		result.Summary = report.Summarize(net, res)
		result.SolveCacheHit = hit
		result.Stats.SolveTime = time.Since(solveStart)
		logger.Info("solved power flow",
			"converged", res.Converged,
			"iterations", res.Iterations,
			"cached", hit,
			"duration", result.Stats.SolveTime)
	}

	// Stage 3: topology graph.
	graphStart := time.Now()
	result.Graph = topology.Build(net, opts.Radius)
	result.Stats.GraphTime = time.Since(graphStart)
	if result.Graph.Skipped > 0 {
		logger.Warn("skipped branches with out-of-range endpoints",
			"count", result.Graph.Skipped)
	}

	// Stage 4: render artifacts.
	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.renderFormat(result.Graph, format, opts)
		if err != nil {
			// A failed drawing never invalidates the computed graph;
			// the caller still gets everything built so far.
			return result, err
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)
	if len(opts.Formats) > 0 {
		logger.Info("rendered artifacts",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// resolveNetwork picks the network from the options, preferring an
// explicit network over a file over a built-in case name.
func (r *Runner) resolveNetwork(opts Options) (*network.Network, error) {
	switch {
	case opts.Network != nil:
		return opts.Network, nil
	case opts.NetworkPath != "":
		return network.ReadNetworkFile(opts.NetworkPath)
	}
	switch opts.Case {
	case ieee14.CaseName, "case14":
		return ieee14.Case(), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeCaseNotFound, "unknown case %q", opts.Case)
}

// solve runs the solver with content-addressed caching: the key covers the
// canonical network JSON and the solver options, so any edit to the case
// misses the cache.
func (r *Runner) solve(ctx context.Context, net *network.Network, opts Options) (*network.Results, bool, error) {
	netJSON, err := network.MarshalNetwork(net)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeInternal, err, "marshal network")
	}
	key := cache.SolveKey(netJSON, opts.SolverOptions)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var res network.Results
		if err := json.Unmarshal(data, &res); err == nil && res.Matches(net) {
			return &res, true, nil
		}
		// Corrupt or stale entry; drop it and solve fresh.
		_ = r.Cache.Delete(ctx, key)
	}

	res, err := opts.Solver.Solve(ctx, net, opts.SolverOptions)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, key, data, 0)
	}
	return res, false, nil
}

func (r *Runner) renderFormat(g *topology.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.PNG(g, opts.Style, opts.Title)
	case FormatSVG:
		return render.RenderSVG(render.ToDOT(g))
	case FormatDOT:
		return []byte(render.ToDOT(g)), nil
	case FormatJSON:
		return topology.MarshalGraph(g)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown format %q", format)
}
