package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			info := map[string]string{"version": version, "commit": commit}
			if ok, err := printStructured(out, opts.output, info); ok {
				return err
			}
			_, err := fmt.Fprintf(out, "sqlsplit version %s (commit: %s)\n", version, commit)
			return err
		},
	}
}
