package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/powerflow"
	"github.com/mfeldt/gridviz/pkg/render"
	"github.com/mfeldt/gridviz/pkg/topology"
)

// Cache backends selectable via config.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Config holds the user configuration loaded from config.toml.
type Config struct {
	Solver  SolverConfig  `toml:"solver"`
	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Render  RenderConfig  `toml:"render"`
}

// SolverConfig selects and tunes the power-flow solver.
type SolverConfig struct {
	// Command is the external solver invocation (argv). Empty means the
	// built-in reference solutions are used.
	Command       []string `toml:"command"`
	Tolerance     float64  `toml:"tolerance"`
	MaxIterations int      `toml:"max_iterations"`
}

// CacheConfig selects the solve-cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file (default), redis, none
	RedisAddr string `toml:"redis_addr"`
}

// ArchiveConfig points at the MongoDB run archive.
type ArchiveConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// RenderConfig tunes the diagram output.
type RenderConfig struct {
	Radius       float64  `toml:"radius"`
	Width        int      `toml:"width"`
	Height       int      `toml:"height"`
	FontFamilies []string `toml:"font_families"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Tolerance:     powerflow.DefaultTolerance,
			MaxIterations: powerflow.DefaultMaxIterations,
		},
		Cache: CacheConfig{
			Backend:   cacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Archive: ArchiveConfig{
			MongoURI: "mongodb://localhost:27017",
			Database: appName,
		},
		Render: RenderConfig{
			Radius: topology.DefaultRadius,
		},
	}
}

// LoadConfig reads the TOML config at path, or the default location when path
// is empty. A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendNone, "":
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	if c.Solver.Tolerance < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "solver tolerance must be >= 0")
	}
	if c.Solver.MaxIterations < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "solver max_iterations must be >= 0")
	}
	return nil
}

// SolverOptions converts the solver section into solve options.
func (c *Config) SolverOptions() powerflow.Options {
	opts := powerflow.DefaultOptions()
	if c.Solver.Tolerance > 0 {
		opts.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MaxIterations > 0 {
		opts.MaxIterations = c.Solver.MaxIterations
	}
	return opts
}

// RenderStyle converts the render section into a drawing style, resolving the
// configured font families against the installed system fonts.
func (c *Config) RenderStyle() render.Style {
	style := render.DefaultStyle()
	if c.Render.Width > 0 {
		style.Width = c.Render.Width
	}
	if c.Render.Height > 0 {
		style.Height = c.Render.Height
	}
	if len(c.Render.FontFamilies) > 0 {
		style.FontPath = render.ResolveFont(c.Render.FontFamilies)
	}
	return style
}

// defaultConfigPath returns the config location using XDG standard
// (~/.config/gridviz/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
