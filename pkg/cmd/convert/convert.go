package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/depot/shredder/pkg/compat"
	"github.com/depot/shredder/pkg/config"
	engine "github.com/depot/shredder/pkg/convert"
	"github.com/depot/shredder/pkg/helpers"
	"github.com/depot/shredder/pkg/pipeline"
	"github.com/depot/shredder/pkg/workflow"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	path        string
	sample      string
	language    string
	output      string
	interactive bool
	notes       bool
	stats       bool
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

func NewCmdConvert() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:     "convert [file]",
		Aliases: []string{"shred"},
		Short:   "Convert a GitHub Actions workflow to Dagger code",
		Long: `Convert a GitHub Actions workflow to a Dagger pipeline in Go, Python or TypeScript.

All steps from all jobs are run in order in a single container. Actions without a
translation are left as TODO comments. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runOpts := opts
			if len(args) > 0 {
				runOpts.path = args[0]
			}
			if !cmd.Flags().Changed("lang") {
				runOpts.language = config.GetLanguage()
			}
			runOpts.stdin = cmd.InOrStdin()
			runOpts.stdout = cmd.OutOrStdout()
			runOpts.stderr = cmd.ErrOrStderr()
			return runConvert(cmd.Context(), runOpts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "lang", "l", "go", "Target language (go, python, typescript)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write the generated code to a file instead of stdout")
	flags.StringVar(&opts.sample, "sample", "", "Convert a built-in sample workflow (basic, intermediate, gnarly)")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the target language interactively")
	flags.BoolVar(&opts.notes, "notes", false, "Print notes about workflow features that were not translated")
	flags.BoolVar(&opts.stats, "stats", false, "Print how many lines the conversion saved")

	return cmd
}

func runConvert(ctx context.Context, opts convertOptions) error {
	out := opts.stdout
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.stderr
	if errOut == nil {
		errOut = os.Stderr
	}

	lang, err := pipeline.ParseLanguage(opts.language)
	if err != nil {
		return err
	}

	if opts.interactive {
		if !helpers.IsTerminal() {
			return fmt.Errorf("interactive mode requires a terminal; use --lang instead")
		}
		lang, err = helpers.SelectLanguage(lang)
		if err != nil {
			return err
		}
	}

	yamlText, err := helpers.ReadWorkflow(opts.path, opts.sample, opts.stdin)
	if err != nil {
		return err
	}

	res := engine.Convert(yamlText, lang)
	if !res.OK() {
		return fmt.Errorf("Conversion failed: %s", res.Error)
	}

	if err := engine.CheckBaseImage(yamlText); err != nil {
		fmt.Fprintln(errOut, helpers.WarnStyle.Render("Warning: "+err.Error()))
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(res.Code), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.output, err)
		}
		fmt.Fprintln(errOut, helpers.SuccessStyle.Render(fmt.Sprintf("Wrote Dagger (%s) pipeline to %s", lang, opts.output)))
	} else {
		fmt.Fprint(out, res.Code)
	}

	if opts.stats {
		fmt.Fprintln(errOut, helpers.SuccessStyle.Render(engine.NewStats(yamlText, res.Code).String()))
	}

	if opts.notes {
		// The document already loaded once inside Convert; a second load
		// cannot fail.
		if doc, err := workflow.Load(yamlText); err == nil {
			helpers.PrintReport(errOut, compat.Analyze(doc))
		}
		fmt.Fprintln(errOut, helpers.MutedStyle.Render("Dagger docs: "+lang.DocsURL()))
		if version, err := helpers.DaggerVersion(); err == nil {
			fmt.Fprintln(errOut, helpers.MutedStyle.Render(fmt.Sprintf("Run with dagger %s: %s", version, helpers.RunHint(lang, opts.output))))
		} else {
			fmt.Fprintln(errOut, helpers.MutedStyle.Render("Install the dagger CLI to run the pipeline: https://docs.dagger.io/install"))
		}
	}

	return nil
}
