package cli

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
	"github.com/mfeldt/gridviz/pkg/powerflow"
	"github.com/mfeldt/gridviz/pkg/topology"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[solver]
command = ["python", "solve.py"]
tolerance = 1e-6
max_iterations = 20

[cache]
backend = "redis"
redis_addr = "cache.local:6379"

[archive]
mongo_uri = "mongodb://db.local:27017"
database = "grid"

[render]
radius = 10.0
width = 800
height = 600
font_families = ["DejaVuSans"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Solver.Command) != 2 || cfg.Solver.Command[0] != "python" {
		t.Errorf("solver command = %v", cfg.Solver.Command)
	}
	if cfg.Cache.Backend != cacheBackendRedis || cfg.Cache.RedisAddr != "cache.local:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Archive.Database != "grid" {
		t.Errorf("archive database = %q", cfg.Archive.Database)
	}
	if cfg.Render.Radius != 10.0 {
		t.Errorf("render radius = %v", cfg.Render.Radius)
	}

	opts := cfg.SolverOptions()
	if math.Abs(opts.Tolerance-1e-6) > 1e-12 || opts.MaxIterations != 20 {
		t.Errorf("solver options = %+v", opts)
	}

	style := cfg.RenderStyle()
	if style.Width != 800 || style.Height != 600 {
		t.Errorf("style size = %dx%d, want 800x600", style.Width, style.Height)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Solver.Tolerance != powerflow.DefaultTolerance {
		t.Errorf("default tolerance = %v", cfg.Solver.Tolerance)
	}
	if cfg.Render.Radius != topology.DefaultRadius {
		t.Errorf("default radius = %v", cfg.Render.Radius)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"negative tolerance", "[solver]\ntolerance = -1.0\n"},
		{"negative iterations", "[solver]\nmax_iterations = -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigPartialOverride(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[render]\nwidth = 640\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	// Unset sections keep their defaults.
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("cache backend = %q, want file", cfg.Cache.Backend)
	}
	style := cfg.RenderStyle()
	if style.Width != 640 {
		t.Errorf("style width = %d, want 640", style.Width)
	}
	if style.Height == 0 {
		t.Error("style height should fall back to the default")
	}
}
