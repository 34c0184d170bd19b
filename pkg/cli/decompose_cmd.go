package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sqlsplit/internal/decompose"
	"sqlsplit/internal/domain"
	"sqlsplit/internal/service"
)

func newDecomposeCmd(opts *rootOptions) *cobra.Command {
	var (
		maxDepth int
		bare     bool
	)
	cmd := &cobra.Command{
		Use:   "decompose [file|-]",
		Short: "List every SELECT in a SQL script",
		Long: `Parse a SQL script and print every SELECT it contains, outermost first.
Statements that belong to a WITH clause are printed with that WITH prefixed so
they run on their own. Reads stdin when no file is given or the file is "-".`,
		Example: `  sqlsplit decompose report.sql
  echo 'SELECT * FROM (SELECT 1) AS t' | sqlsplit decompose --dialect duckdb -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readScript(cmd, args)
			if err != nil {
				return err
			}
			svc := service.NewDecomposeService(nil, opts.dialect.d, maxDepth, opts.logger)
			res, err := svc.Decompose(cmd.Context(), domain.DecomposeRequest{SQL: sql})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ok, err := printStructured(out, opts.output, res); ok {
				return err
			}
			if bare {
				for _, s := range res.Selects {
					if _, err := fmt.Fprintf(out, "%s;\n", s); err != nil {
						return err
					}
				}
				return nil
			}
			return printDecomposeText(out, newStyler(out), res)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", decompose.DefaultMaxDepth, "Maximum nesting depth before the script is rejected")
	cmd.Flags().BoolVar(&bare, "bare", false, "Print only the runnable statements, one per line")
	return cmd
}

func printDecomposeText(w io.Writer, st styler, res *service.DecomposeResult) error {
	if len(res.Statements) == 0 {
		_, err := fmt.Fprintln(w, st.dim("-- no SELECT statements"))
		return err
	}
	for i, s := range res.Statements {
		header := fmt.Sprintf("-- [%d]", i+1)
		if s.WithIndex >= 0 {
			header += fmt.Sprintf(" with #%d", s.WithIndex+1)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s;\n\n", st.dim(header), s.Runnable); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, st.dim(fmt.Sprintf("-- %d statement(s), %d WITH clause(s), dialect %s",
		len(res.Statements), len(res.Withs), res.Dialect)))
	return err
}
