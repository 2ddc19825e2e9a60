// Package cli implements the gridviz command-line interface.
//
// This package provides commands for solving power-flow cases, building and
// rendering network topology graphs, inspecting results, browsing the run
// archive, and serving everything over HTTP. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mfeldt/gridviz/pkg/buildinfo"
	"github.com/mfeldt/gridviz/pkg/cache"
	"github.com/mfeldt/gridviz/pkg/network"
	"github.com/mfeldt/gridviz/pkg/network/ieee14"
	"github.com/mfeldt/gridviz/pkg/pipeline"
	"github.com/mfeldt/gridviz/pkg/powerflow"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gridviz"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridviz solves power-flow cases and draws their topology",
		Long:         `Gridviz is a CLI tool for running power-flow studies on electrical networks and visualizing their bus-branch topology as circular network diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/gridviz/config.toml)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner with the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == cacheBackendNone {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == cacheBackendRedis {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSolver picks the configured external solver command, falling back to the
// built-in reference solutions when none is configured.
func (c *CLI) newSolver() powerflow.Solver {
	if len(c.Config.Solver.Command) > 0 {
		return powerflow.NewExec(c.Config.Solver.Command)
	}
	return powerflow.NewReference(map[string]*network.Results{
		ieee14.CaseName: ieee14.Solution(),
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gridviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from the loaded configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		SolverOptions: c.Config.SolverOptions(),
		Radius:        c.Config.Render.Radius,
		Style:         c.Config.RenderStyle(),
		Logger:        c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		s = fallback
	}
	return strings.Split(s, ",")
}
