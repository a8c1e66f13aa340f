package configure

import (
	"fmt"
	"io"

	"github.com/depot/shredder/pkg/config"
	"github.com/depot/shredder/pkg/helpers"
	"github.com/depot/shredder/pkg/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewCmdConfigure() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Set the default language and AI assist settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd.Flags(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("language", "", "Default target language (go, python, typescript)")
	cmd.Flags().String("model", "", "Model used by assist")
	cmd.Flags().Bool("openai-key", false, "Prompt for an OpenAI API key and store it")
	cmd.Flags().Bool("clear-key", false, "Remove the stored OpenAI API key")

	return cmd
}

func runConfigure(flags *pflag.FlagSet, out io.Writer) error {
	if clearKey, _ := flags.GetBool("clear-key"); clearKey {
		if err := config.ClearOpenAIKey(); err != nil {
			return err
		}
		fmt.Fprintln(out, "OpenAI API key cleared.")
	}

	if flags.Changed("language") {
		value, _ := flags.GetString("language")
		lang, err := pipeline.ParseLanguage(value)
		if err != nil {
			return err
		}
		if err := config.SetLanguage(lang.String()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Default language set to %s.\n", lang.Title())
	}

	if flags.Changed("model") {
		model, _ := flags.GetString("model")
		if err := config.SetOpenAIModel(model); err != nil {
			return err
		}
		fmt.Fprintf(out, "Model set to %s.\n", model)
	}

	promptKey, _ := flags.GetBool("openai-key")
	if promptKey {
		if !helpers.IsTerminal() {
			return fmt.Errorf("--openai-key requires a terminal; set SHREDDER_OPENAI_API_KEY instead")
		}
		key, err := helpers.PromptForSecret("OpenAI API key: ")
		if err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("no key entered")
		}
		if err := config.SetOpenAIKey(key); err != nil {
			return err
		}
		fmt.Fprintln(out, "OpenAI API key saved.")
	}

	if flags.NFlag() == 0 {
		printSettings(out)
	}
	return nil
}

func printSettings(w io.Writer) {
	key := "not set"
	if k := config.GetOpenAIKey(); k != "" {
		key = "set"
	}
	fmt.Fprintf(w, "language: %s\n", config.GetLanguage())
	fmt.Fprintf(w, "openai_model: %s\n", config.GetOpenAIModel())
	fmt.Fprintf(w, "openai_base_url: %s\n", config.GetOpenAIBaseURL())
	fmt.Fprintf(w, "openai_api_key: %s\n", key)
	fmt.Fprintf(w, "listen: %s\n", config.GetListen())
}
