// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/stacklok/toolhive-readenv/readenv"
	"github.com/stacklok/toolhive-readenv/recovery"
)

// New creates an MCP server exposing the read_env_var tool.
func New(name, version string, tool *readenv.Tool, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(NewTool(), NewHandler(tool, logger).Handle)
	return s
}

// ServeStdio serves s over in and out until in is closed or ctx is done.
// Transport errors are logged through logger; out carries only JSON-RPC.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	stdio := server.NewStdioServer(s)
	if logger != nil {
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
		logger.Debug("serving MCP over stdio")
	} else {
		stdio.SetErrorLogger(log.New(io.Discard, "", 0))
	}
	return stdio.Listen(ctx, in, out)
}

// HTTPHandler returns a streamable-HTTP handler for s that recovers from panics.
func HTTPHandler(s *server.MCPServer, logger *slog.Logger) http.Handler {
	return recovery.Middleware(server.NewStreamableHTTPServer(s), logger)
}
