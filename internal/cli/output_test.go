package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output", "", "ieee14.json", "ieee14"},
		{"case name input", "", "ieee14", "ieee14"},
		{"output with format ext", "grid.png", "ieee14", "grid"},
		{"output with foreign ext", "grid.out", "ieee14", "grid.out"},
		{"plain output", "diagrams/grid", "ieee14", "diagrams/grid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "grid")
	artifacts := map[string][]byte{
		"png": []byte("png-bytes"),
		"dot": []byte("graph topology {}"),
	}

	if err := writeArtifacts(artifacts, []string{"png", "dot", "svg"}, base); err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	data, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if string(data) != "graph topology {}" {
		t.Errorf("dot content = %q", data)
	}
	if _, err := os.Stat(base + ".png"); err != nil {
		t.Errorf("png not written: %v", err)
	}

	// svg was requested but never rendered; it must be silently skipped.
	if _, err := os.Stat(base + ".svg"); !os.IsNotExist(err) {
		t.Error("svg should not exist")
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".cache", appName)) {
		t.Errorf("cacheDir() = %q, should end with .cache/%s", dir, appName)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats("", "png"); len(got) != 1 || got[0] != "png" {
		t.Errorf("parseFormats empty = %v", got)
	}
	if got := parseFormats("svg,dot", "png"); len(got) != 2 || got[0] != "svg" || got[1] != "dot" {
		t.Errorf("parseFormats = %v", got)
	}
}
