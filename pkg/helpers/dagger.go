package helpers

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/depot/shredder/pkg/pipeline"
)

// DaggerVersion returns the version of the dagger CLI on PATH.
func DaggerVersion() (string, error) {
	daggerPath, err := exec.LookPath("dagger")
	if err != nil {
		return "", err
	}

	output, err := exec.Command(daggerPath, "version").Output()
	if err != nil {
		return "", err
	}
	return parseDaggerVersion(string(output))
}

func parseDaggerVersion(output string) (string, error) {
	parsed := strings.Fields(output)
	if len(parsed) < 2 {
		return "", fmt.Errorf("unable to parse dagger version")
	}
	return parsed[1], nil
}

// RunHint is the command that runs a generated pipeline saved to file.
func RunHint(lang pipeline.Language, file string) string {
	if file == "" {
		file = "main" + lang.Extension()
	}
	switch lang {
	case pipeline.Python:
		return "dagger run python " + file
	case pipeline.TypeScript:
		return "dagger run npx tsx " + file
	default:
		return "dagger run go run " + file
	}
}
