// Package cli implements the sqlsplit command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sqlsplit/internal/config"
	"sqlsplit/internal/domain"
	"sqlsplit/internal/sqlparse"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the resolved global flags shared by every command.
type rootOptions struct {
	dialect     dialectFlag
	dialectSet  bool // dialect came from a flag, the environment or a profile
	output      outputFormat
	logLevel    string
	profileName string

	profile Profile
	logger  *slog.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if opts.output == outputJSON {
			_ = printJSON(stdout, errorObject(err))
		} else {
			fmt.Fprintf(stderr, "%s %v\n", newStyler(stderr).red("Error:"), err)
		}
		return 1
	}
	return 0
}

// errorObject is the JSON shape of a failed command.
func errorObject(err error) map[string]any {
	obj := map[string]any{"error": err.Error()}
	var (
		pe *domain.ParseError
		de *domain.DepthError
		ve *domain.ValidationError
		ee *domain.ExecutionError
		ue *domain.UnavailableError
		ne *domain.NotFoundError
	)
	switch {
	case errors.As(err, &pe):
		obj["code"] = "parse_error"
		obj["line"] = pe.Line
		obj["column"] = pe.Column
	case errors.As(err, &de):
		obj["code"] = "nesting_too_deep"
	case errors.As(err, &ve):
		obj["code"] = "invalid_argument"
	case errors.As(err, &ee):
		obj["code"] = "execution_failed"
	case errors.As(err, &ue):
		obj["code"] = "unavailable"
	case errors.As(err, &ne):
		obj["code"] = "not_found"
	}
	return obj
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	opts.dialect.d = sqlparse.Postgres
	opts.output = outputText

	rootCmd := &cobra.Command{
		Use:   "sqlsplit",
		Short: "Decompose SQL scripts into standalone SELECT statements",
		Long: `sqlsplit parses a SQL script and lists every SELECT it contains, including
subqueries, set-operation branches and CTE bodies, each re-serialized so it
can be run on its own.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.Var(&opts.dialect, "dialect", "SQL dialect: postgres, mysql, duckdb or generic")
	pf.VarP(&opts.output, "output", "o", "Output format: text, json or yaml")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.StringVarP(&opts.profileName, "profile", "p", "", "Config profile to use")

	rootCmd.AddCommand(newDecomposeCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// resolve applies precedence flag > env > profile > default to the global
// flags and builds the logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	uc, err := LoadUserConfig()
	if err != nil {
		return err
	}
	p, err := uc.ActiveProfile(o.profileName)
	if err != nil {
		return err
	}
	o.profile = p

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		o.dialectSet = true
	} else if v := firstNonEmpty(os.Getenv("SQLSPLIT_DIALECT"), p.Dialect); v != "" {
		if err := o.dialect.Set(v); err != nil {
			return fmt.Errorf("dialect: %w", err)
		}
		o.dialectSet = true
	}
	if !flags.Changed("output") {
		if v := firstNonEmpty(os.Getenv("SQLSPLIT_OUTPUT"), p.Output); v != "" {
			if err := o.output.Set(v); err != nil {
				return err
			}
		}
	}
	if !flags.Changed("log-level") {
		if v := firstNonEmpty(os.Getenv("SQLSPLIT_LOG_LEVEL"), p.LogLevel); v != "" {
			o.logLevel = v
		}
	}

	level := (&config.Config{LogLevel: o.logLevel}).SlogLevel()
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// appConfig loads the server configuration from the environment (and .env)
// and overlays the active profile where the environment is silent.
func (o *rootOptions) appConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if _, set := os.LookupEnv("DATABASE_URL"); !set && o.profile.DatabaseURL != "" {
		cfg.DatabaseURL = o.profile.DatabaseURL
		if strings.EqualFold(cfg.DatabaseURL, config.DisabledDatabaseURL) {
			cfg.DatabaseURL = ""
		}
	}
	if _, set := os.LookupEnv("PARAMETER_PATTERN"); !set && o.profile.ParameterPattern != "" {
		cfg.ParameterPattern = o.profile.ParameterPattern
	}
	if _, set := os.LookupEnv("HISTORY_DB_PATH"); !set && o.profile.HistoryDBPath != "" {
		cfg.HistoryDBPath = o.profile.HistoryDBPath
	}
	if o.dialectSet {
		cfg.Dialect = o.dialect.String()
	}
	for _, w := range cfg.Warnings {
		o.logger.Warn(w)
	}
	return cfg, nil
}

// readScript reads SQL from the file named by args[0], or from stdin when
// there is no argument or it is "-".
func readScript(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), domain.MaxSQLBytes+1))
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	if len(data) > domain.MaxSQLBytes {
		return "", domain.ErrValidation("script exceeds %d bytes", domain.MaxSQLBytes)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", domain.ErrValidation("script is empty")
	}
	return string(data), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
