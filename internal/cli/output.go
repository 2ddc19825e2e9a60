package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mfeldt/gridviz/pkg/pipeline"
)

// basePath derives the base output path from the output flag and input name.
// If output is empty, the input name (without extension) is used. If output
// carries a known format extension, it is stripped so multiple formats can
// share the base.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered artifact to base.format and prints the
// resulting paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := fmt.Sprintf("%s.%s", base, format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
