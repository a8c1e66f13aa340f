package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

func NewCmdVersion(version, buildDate string) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "version",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), Format(version, buildDate))
		},
	}
	return cmd
}

func Format(version, buildDate string) string {
	version = strings.TrimPrefix(version, "v")

	var dateStr string
	if buildDate != "" {
		dateStr = fmt.Sprintf(" (%s)", buildDate)
	}

	return fmt.Sprintf("shredder version %s%s\n%s\n", version, dateStr, changelogURL(version))
}

var releasePattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[\w.]+)?$`)

func changelogURL(version string) string {
	path := "https://github.com/depot/shredder"
	if !releasePattern.MatchString(version) {
		return fmt.Sprintf("%s/releases/latest", path)
	}
	return fmt.Sprintf("%s/releases/tag/v%s", path, strings.TrimPrefix(version, "v"))
}
