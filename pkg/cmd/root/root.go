package root

import (
	"github.com/spf13/cobra"

	assistCmd "github.com/depot/shredder/pkg/cmd/assist"
	checkCmd "github.com/depot/shredder/pkg/cmd/check"
	configureCmd "github.com/depot/shredder/pkg/cmd/configure"
	convertCmd "github.com/depot/shredder/pkg/cmd/convert"
	samplesCmd "github.com/depot/shredder/pkg/cmd/samples"
	serveCmd "github.com/depot/shredder/pkg/cmd/serve"
	versionCmd "github.com/depot/shredder/pkg/cmd/version"
	"github.com/depot/shredder/pkg/config"
	"github.com/depot/shredder/pkg/debuglog"
)

func NewCmdRoot(version, buildDate string) *cobra.Command {
	var debug bool

	var cmd = &cobra.Command{
		Use:   "shredder <command> [flags]",
		Short: "Convert GitHub Actions workflows into Dagger pipelines",
		Long: `Shredder turns a GitHub Actions workflow into Dagger pipeline code
written in Go, Python, or TypeScript.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Usage()
		},

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				debuglog.Enable()
			}
		},
	}

	// Initialize config
	_ = config.NewConfig()

	formattedVersion := versionCmd.Format(version, buildDate)
	cmd.SetVersionTemplate(formattedVersion)
	cmd.Version = formattedVersion
	cmd.Flags().Bool("version", false, "Print the version and exit")

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print debug logs to stderr")

	// Child commands
	cmd.AddCommand(convertCmd.NewCmdConvert())
	cmd.AddCommand(checkCmd.NewCmdCheck())
	cmd.AddCommand(assistCmd.NewCmdAssist())
	cmd.AddCommand(samplesCmd.NewCmdSamples())
	cmd.AddCommand(serveCmd.NewCmdServe())
	cmd.AddCommand(configureCmd.NewCmdConfigure())
	cmd.AddCommand(versionCmd.NewCmdVersion(version, buildDate))

	return cmd
}
