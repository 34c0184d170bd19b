// Command server runs the sqlsplit HTTP API and /ui workbench.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"

	"sqlsplit/internal/config"
	cli "sqlsplit/pkg/cli"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env", "error", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	logger.Info("try the API",
		"example", fmt.Sprintf(`curl -X POST -d '{"sql":"SELECT * FROM (SELECT 1) AS t"}' http://%s/v1/decompose`,
			curlHostForListenAddr(cfg.ListenAddr)))
	return cli.Serve(context.Background(), cfg, logger)
}

// curlHostForListenAddr turns a listen address into a host:port usable from
// the local machine. Wildcard and empty hosts become localhost.
func curlHostForListenAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
