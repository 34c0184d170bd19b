// Package app wires configuration, stores and services into a running
// sqlsplit instance. Both the server binary and the CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"sqlsplit/internal/api"
	"sqlsplit/internal/config"
	"sqlsplit/internal/db"
	"sqlsplit/internal/domain"
	"sqlsplit/internal/history"
	"sqlsplit/internal/middleware"
	"sqlsplit/internal/params"
	"sqlsplit/internal/runner"
	"sqlsplit/internal/service"
	"sqlsplit/internal/sqlparse"
	"sqlsplit/internal/ui"
)

// Services groups the application services shared by every surface.
type Services struct {
	Decompose *service.DecomposeService
	Query     *service.QueryService
	History   *service.HistoryService // nil when the history store is disabled
}

// App holds the wired services and the resources they own.
type App struct {
	Services Services
	Runner   *runner.Runner  // nil when DATABASE_URL is "none"
	Pruner   *history.Pruner // nil when the history store is disabled

	cfg     *config.Config
	logger  *slog.Logger
	closers []func() error
}

// New opens the history store (running its migrations), configures the
// runner and builds the services. Close releases everything New opened.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (a *App, err error) {
	dialect, err := sqlparse.ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, fmt.Errorf("SQL_DIALECT: %w", err)
	}
	pattern, err := params.ParsePattern(cfg.ParameterPattern)
	if err != nil {
		return nil, fmt.Errorf("PARAMETER_PATTERN: %w", err)
	}

	a = &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	// === History store ===
	var repo domain.HistoryRepository
	if cfg.HistoryDBPath != "" {
		writeDB, readDB, err := db.OpenSQLitePair(ctx, cfg.HistoryDBPath, 0)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		a.closers = append(a.closers, readDB.Close, writeDB.Close)
		if _, err := db.RunMigrations(ctx, writeDB); err != nil {
			return nil, fmt.Errorf("migrate history store: %w", err)
		}
		store := history.NewStore(writeDB, readDB)
		repo = store

		a.Pruner, err = history.NewPruner(store, cfg.HistoryPruneSchedule, cfg.HistoryRetention, logger)
		if err != nil {
			return nil, err
		}
		a.Services.History = service.NewHistoryService(store)
	}

	// === Runner ===
	// A nil *runner.Runner must not reach the service as a non-nil interface.
	var sr service.StatementRunner
	if cfg.RunnerEnabled() {
		r, err := runner.Open(ctx, runner.Config{
			URL:          cfg.DatabaseURL,
			MaxOpenConns: cfg.DBMaxOpenConns,
			QueryTimeout: cfg.QueryTimeout,
			MaxRows:      cfg.MaxResultRows,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("DATABASE_URL: %w", err)
		}
		a.closers = append(a.closers, r.Close)
		a.Runner = r
		sr = r
	}

	a.Services.Decompose = service.NewDecomposeService(repo, dialect, cfg.MaxNestingDepth, logger)
	a.Services.Query = service.NewQueryService(sr, repo, pattern, logger)
	return a, nil
}

// Handler builds the HTTP surface: the JSON API plus the /ui workbench.
// The rate limiter's sweeper stops when ctx is done.
func (a *App) Handler(ctx context.Context) (http.Handler, error) {
	var validator middleware.TokenValidator
	if a.cfg.JWTSecret != "" {
		v, err := middleware.NewHS256Validator(a.cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		validator = v
	}

	workbench := &ui.Handler{
		Decompose:  a.Services.Decompose,
		Query:      a.Services.Query,
		Production: a.cfg.IsProduction(),
		Logger:     a.logger.With("component", "ui"),
	}
	h := api.NewHandler(a.Services.Decompose, a.Services.Query, a.Services.History, a.logger)
	return api.NewRouter(ctx, h, api.RouterConfig{
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: a.cfg.RateLimitRPS,
			Burst:             a.cfg.RateLimitBurst,
		},
		Auth: validator,
		UI:   workbench.Routes(),
	}), nil
}

// Serve runs the HTTP server until ctx is done, then shuts it down
// gracefully. The history pruner runs for the lifetime of the server.
func (a *App) Serve(ctx context.Context) error {
	handler, err := a.Handler(ctx)
	if err != nil {
		return err
	}

	if a.Pruner != nil {
		a.Pruner.Start()
		defer a.Pruner.Stop()
	}

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info("server listening",
		"addr", a.cfg.ListenAddr,
		"dialect", a.Services.Decompose.DefaultDialect().String(),
		"query_enabled", a.Services.Query.Enabled(),
		"history_enabled", a.Services.History != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Close releases the runner pool and the history store, in reverse order of
// opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewLogger returns the JSON stderr logger used by the server.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
