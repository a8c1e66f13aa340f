package assist

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	assistclient "github.com/depot/shredder/pkg/assist"
	"github.com/depot/shredder/pkg/config"
	"github.com/depot/shredder/pkg/helpers"
	"github.com/depot/shredder/pkg/pipeline"
	"github.com/spf13/cobra"
)

type translator interface {
	Translate(ctx context.Context, yamlText string, lang pipeline.Language) (string, error)
}

type assistOptions struct {
	path     string
	sample   string
	language string
	spinner  bool
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func NewCmdAssist() *cobra.Command {
	var (
		opts   assistOptions
		apiKey string
		model  string
	)

	cmd := &cobra.Command{
		Use:   "assist [file]",
		Short: "Translate a workflow with an AI model instead of the built-in converter",
		Long: `Send the workflow to an OpenAI-compatible chat completions API and print the reply.

The output is free-form and is not checked in any way.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runOpts := opts
			if len(args) > 0 {
				runOpts.path = args[0]
			}
			if !cmd.Flags().Changed("lang") {
				runOpts.language = config.GetLanguage()
			}
			if apiKey == "" {
				apiKey = config.GetOpenAIKey()
			}
			if model == "" {
				model = config.GetOpenAIModel()
			}
			runOpts.stdin = cmd.InOrStdin()
			runOpts.stdout = cmd.OutOrStdout()
			runOpts.stderr = cmd.ErrOrStderr()
			runOpts.spinner = helpers.IsTerminal()

			client := assistclient.New(apiKey,
				assistclient.WithModel(model),
				assistclient.WithBaseURL(config.GetOpenAIBaseURL()),
			)
			return runAssist(cmd.Context(), client, runOpts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "lang", "l", "go", "Target language (go, python, typescript)")
	flags.StringVar(&opts.sample, "sample", "", "Translate a built-in sample workflow")
	flags.StringVar(&apiKey, "openai-key", "", "OpenAI API key (defaults to the configured key)")
	flags.StringVar(&model, "model", "", "Model to use (defaults to the configured model)")

	return cmd
}

func runAssist(ctx context.Context, client translator, opts assistOptions) error {
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

	yamlText, err := helpers.ReadWorkflow(opts.path, opts.sample, opts.stdin)
	if err != nil {
		return err
	}

	if opts.spinner {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(errOut))
		s.Suffix = " Shredding..."
		s.Start()
		defer s.Stop()
	}

	code, err := client.Translate(ctx, yamlText, lang)
	if err != nil {
		return fmt.Errorf("AI translation failed: %w", err)
	}
	if code == "" {
		fmt.Fprintln(errOut, helpers.WarnStyle.Render("The model returned no output."))
		return nil
	}

	fmt.Fprintln(out, code)
	return nil
}
