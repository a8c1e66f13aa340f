package samples

import (
	"fmt"
	"io"

	"github.com/depot/shredder/pkg/helpers"
	"github.com/depot/shredder/pkg/samples"
	"github.com/spf13/cobra"
)

func NewCmdSamples() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "samples [name]",
		Short:     "List or print the built-in sample workflows",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: samples.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listSamples(cmd.OutOrStdout())
				return nil
			}

			content, err := samples.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	return cmd
}

func listSamples(w io.Writer) {
	for _, s := range samples.List() {
		fmt.Fprintf(w, "%-14s %s\n", s.Name, helpers.MutedStyle.Render(s.Description))
	}
}
