package check

import (
	"fmt"
	"io"
	"os"

	"github.com/depot/shredder/pkg/compat"
	"github.com/depot/shredder/pkg/helpers"
	"github.com/depot/shredder/pkg/workflow"
	"github.com/spf13/cobra"
)

func NewCmdCheck() *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "List workflow features that will not be translated",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runCheck(path, sample, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sample, "sample", "", "Check a built-in sample workflow")

	return cmd
}

func runCheck(path, sample string, stdin io.Reader, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	yamlText, err := helpers.ReadWorkflow(path, sample, stdin)
	if err != nil {
		return err
	}

	doc, err := workflow.Load(yamlText)
	if err != nil {
		return err
	}

	steps := 0
	for _, job := range doc.Jobs {
		steps += len(job.Steps)
	}
	name := doc.Name
	if name == "" {
		name = "workflow"
	}
	fmt.Fprintf(out, "%s: %d job(s), %d step(s)\n", name, len(doc.Jobs), steps)

	helpers.PrintReport(out, compat.Analyze(doc))
	return nil
}
