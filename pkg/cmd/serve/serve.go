package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/depot/shredder/pkg/assist"
	"github.com/depot/shredder/pkg/config"
	"github.com/depot/shredder/pkg/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewCmdServe() *cobra.Command {
	var (
		listen   string
		jsonLogs bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Long: `Serve the converter over HTTP.

  POST /api/convert       {"yaml": "...", "language": "go"}
  POST /api/assist        same body, AI-assisted translation
  GET  /api/samples/NAME  sample workflow
  GET  /healthz

/api/assist answers 503 unless an OpenAI API key is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = config.GetListen()
			}

			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			if jsonLogs {
				log.SetFormatter(&logrus.JSONFormatter{})
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(newTranslator(), log).ListenAndServe(ctx, listen)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&listen, "listen", "", "Address to listen on (default \":8080\")")
	flags.BoolVar(&jsonLogs, "json-logs", false, "Log requests as JSON")

	return cmd
}

// newTranslator returns nil when no API key is configured.
func newTranslator() server.Translator {
	key := config.GetOpenAIKey()
	if key == "" {
		return nil
	}
	return assist.New(key,
		assist.WithModel(config.GetOpenAIModel()),
		assist.WithBaseURL(config.GetOpenAIBaseURL()),
	)
}
