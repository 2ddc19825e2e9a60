package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/buildinfo"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/pipeline"
)

// serveCommand creates the serve command: solve a case once and expose the
// results and diagrams over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		networkPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve [case]",
		Short: "Serve solved results and diagrams over HTTP",
		Long: `Serve solved results and diagrams over HTTP.

The serve command solves the case once at startup and serves the summary,
results, graph, and rendered diagrams until interrupted.

Endpoints:
  GET /healthz        server health and version
  GET /api/summary    solve summary
  GET /api/results    full result tables
  GET /api/graph      topology graph
  GET /topology.png   rendered diagram (PNG)
  GET /topology.svg   rendered diagram (SVG)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caseName := ieee14.CaseName
			if len(args) == 1 {
				caseName = args[0]
			}
			return c.runServe(cmd.Context(), caseName, networkPath, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&networkPath, "network", "n", "", "network JSON file (overrides the case argument)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solve cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, caseName, networkPath, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	popts.Case = caseName
	popts.NetworkPath = networkPath
	popts.Solver = c.newSolver()
	popts.Formats = []string{pipeline.FormatPNG, pipeline.FormatSVG}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      newServeHandler(result, c.Logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "case", result.Network.Name)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// HTTP Handler
// =============================================================================

// newServeHandler builds the HTTP routes for a solved pipeline result.
func newServeHandler(result *pipeline.Result, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
			"case":    result.Network.Name,
		})
	})
	r.Get("/api/summary", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, result.Summary)
	})
	r.Get("/api/results", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, result.Results)
	})
	r.Get("/api/graph", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, result.Graph)
	})
	r.Get("/topology.png", serveArtifact(result, pipeline.FormatPNG, "image/png"))
	r.Get("/topology.svg", serveArtifact(result, pipeline.FormatSVG, "image/svg+xml"))

	return r
}

func serveArtifact(result *pipeline.Result, format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		data, ok := result.Artifacts[format]
		if !ok {
			loggerFromContext(req.Context()).Warn("artifact not rendered", "format", format)
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// requestLogger logs each request with method, path, and duration.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req.WithContext(withLogger(req.Context(), logger)))
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}
