// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/stacklok/toolhive-readenv/config"
	"github.com/stacklok/toolhive-readenv/mcpserver"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var transport, address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the read_env_var tool over MCP",
		Long: "Serves the read_env_var tool over the Model Context Protocol, " +
			"on stdin/stdout (default) or over streamable HTTP.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("transport") {
				cfg.Server.Transport = transport
			}
			if cmd.Flags().Changed("address") {
				cfg.Server.Address = address
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tool, err := newTool(cfg, opts.reader, logger)
			if err != nil {
				return err
			}
			s := mcpserver.New(cfg.Server.Name, Version, tool, logger)

			ctx := cmd.Context()
			logger.Info("starting MCP server",
				"name", cfg.Server.Name, "version", Version, "transport", cfg.Server.Transport)

			if cfg.Server.Transport == config.TransportHTTP {
				return serveHTTP(ctx, cfg.Server.Address, s, logger)
			}
			err = mcpserver.ServeStdio(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport: stdio or http")
	cmd.Flags().StringVar(&address, "address", config.DefaultAddress, "listen address for the http transport")
	return cmd
}

// serveHTTP serves s over streamable HTTP until ctx is done, then shuts
// down gracefully.
func serveHTTP(ctx context.Context, addr string, s *server.MCPServer, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           mcpserver.HTTPHandler(s, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
