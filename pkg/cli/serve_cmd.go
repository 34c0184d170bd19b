package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sqlsplit/internal/app"
	"sqlsplit/internal/config"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the /ui workbench",
		Long: `Start the HTTP server. Configuration comes from the environment and .env
(LISTEN_ADDR, DATABASE_URL, HISTORY_DB_PATH, API_JWT_SECRET, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.appConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listen
			}
			return Serve(cmd.Context(), cfg, app.NewLogger(cfg, cmd.ErrOrStderr()))
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides LISTEN_ADDR)")
	return cmd
}

// Serve wires the application from cfg and runs the HTTP server until ctx
// is done or the process receives SIGINT or SIGTERM.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()
	return a.Serve(ctx)
}
