// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"errors"
	"fmt"

	upstream "github.com/modelcontextprotocol/registry/pkg/api/v0"
	"github.com/spf13/cobra"

	"github.com/stacklok/toolhive-readenv/config"
	"github.com/stacklok/toolhive-readenv/mcpserver"
	"github.com/stacklok/toolhive-readenv/readenv"
)

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	var (
		asMCP, asServer bool
		pub             mcpserver.Publication
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "print the tool registration descriptor as JSON",
		Long: "Prints the tool registration descriptor as JSON. With --mcp it prints " +
			"the MCP tool definition; with --server it prints the MCP registry " +
			"server.json for publishing this server.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asMCP && asServer {
				return errors.New("--mcp and --server are mutually exclusive")
			}

			var v any = readenv.NewDescriptor()
			switch {
			case asMCP:
				v = mcpserver.NewTool()
			case asServer:
				serverJSON, err := serverRecord(opts, pub)
				if err != nil {
					return err
				}
				v = serverJSON
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
	cmd.Flags().BoolVar(&asMCP, "mcp", false, "print the MCP tool definition instead")
	cmd.Flags().BoolVar(&asServer, "server", false, "print the MCP registry server.json instead")
	cmd.Flags().StringVar(&pub.Image, "image", "", "OCI image that runs the server over stdio (with --server)")
	cmd.Flags().StringVar(&pub.URL, "url", "",
		"public streamable-HTTP endpoint (with --server; defaults to the configured http address)")
	cmd.Flags().StringVar(&pub.RepositoryURL, "repository", "", "source repository URL (with --server)")
	return cmd
}

// serverRecord fills the server name and, for the http transport, the
// endpoint from the configuration.
func serverRecord(opts *rootOptions, pub mcpserver.Publication) (*upstream.ServerJSON, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	pub.Name = cfg.Server.Name
	pub.Version = Version
	if pub.URL == "" && cfg.Server.Transport == config.TransportHTTP {
		pub.URL = "http://" + cfg.Server.Address + "/mcp"
	}
	return mcpserver.ServerJSON(pub)
}
