package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sqlsplit/internal/app"
	"sqlsplit/internal/domain"
	"sqlsplit/internal/service"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		index       int
		paramArgs   []string
		pattern     string
		databaseURL string
	)
	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Run one decomposed statement against DATABASE_URL",
		Long: `Decompose a SQL script, substitute parameters into the chosen statement and
run it against the target database. Statements are numbered as printed by
"sqlsplit decompose". Without --dialect, the dialect follows the database URL.`,
		Example: `  sqlsplit run report.sql --index 2 --param since=2024-01-01
  sqlsplit run q.sql --pattern dapper --param id=42 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readScript(cmd, args)
			if err != nil {
				return err
			}
			ps, err := parseParamFlags(paramArgs)
			if err != nil {
				return err
			}

			cfg, err := opts.appConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("database-url") {
				cfg.DatabaseURL = databaseURL
			}
			if !cfg.RunnerEnabled() {
				return domain.ErrUnavailable("statement execution is disabled: set DATABASE_URL")
			}

			a, err := app.New(cmd.Context(), cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			dialect := a.Services.Query.Dialect()
			if opts.dialectSet {
				dialect = opts.dialect.d
			}
			res, err := a.Services.Decompose.Decompose(cmd.Context(), domain.DecomposeRequest{
				SQL:     sql,
				Dialect: dialect.String(),
			})
			if err != nil {
				return err
			}
			if index < 1 || index > len(res.Statements) {
				return domain.ErrValidation("--index %d out of range: script has %d statement(s)", index, len(res.Statements))
			}

			out, err := a.Services.Query.Run(cmd.Context(), domain.QueryRequest{
				SQL:        res.Statements[index-1].Runnable,
				Pattern:    domain.ParameterPattern(pattern),
				Parameters: ps,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if ok, err := printStructured(w, opts.output, out); ok {
				return err
			}
			return printQueryText(w, newStyler(w), out)
		},
	}
	cmd.Flags().IntVar(&index, "index", 1, "Statement to run, 1-based")
	cmd.Flags().StringArrayVar(&paramArgs, "param", nil, "Parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Placeholder syntax: mybatis, jpa, dapper or log (default from PARAMETER_PATTERN)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Target database URL (overrides DATABASE_URL)")
	return cmd
}

// parseParamFlags converts repeated name=value flags into parameters.
func parseParamFlags(values []string) ([]domain.Parameter, error) {
	out := make([]domain.Parameter, 0, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, domain.ErrValidation("--param %q: expected name=value", v)
		}
		out = append(out, domain.Parameter{Name: name, Value: value})
	}
	return out, nil
}

func printQueryText(w io.Writer, st styler, res *service.QueryResult) error {
	headers := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		headers[i] = c.Name
	}
	rows := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells := make([]string, len(res.Columns))
		for j, c := range res.Columns {
			v, ok := row[c.Name]
			if !ok {
				v = "?"
			}
			cells[j] = v
		}
		rows[i] = cells
	}
	if err := printTable(w, headers, rows); err != nil {
		return err
	}
	summary := fmt.Sprintf("(%d row(s))", res.RowCount)
	if res.Truncated {
		summary = fmt.Sprintf("(%d row(s), truncated)", res.RowCount)
	}
	_, err := fmt.Fprintln(w, st.dim(summary))
	return err
}
