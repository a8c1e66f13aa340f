package helpers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/depot/shredder/pkg/samples"
)

var errNoWorkflow = errors.New("no workflow provided; pass a file, pipe YAML on stdin, or use --sample")

// ReadWorkflow loads workflow text from a sample name, a file path, or stdin
// when path is "-" or empty. An empty path refuses to read an interactive
// terminal; "-" reads it until EOF.
func ReadWorkflow(path, sample string, stdin io.Reader) (string, error) {
	if sample != "" {
		if path != "" {
			return "", fmt.Errorf("cannot use --sample together with a file argument")
		}
		return samples.Get(sample)
	}

	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		// A bare "shredder convert" at a prompt would otherwise wait for EOF.
		if path == "" && !IsPiped(stdin) {
			return "", errNoWorkflow
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read workflow from stdin: %w", err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return "", errNoWorkflow
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read workflow file %s: %w", path, err)
	}
	return string(content), nil
}
