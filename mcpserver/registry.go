// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	upstream "github.com/modelcontextprotocol/registry/pkg/api/v0"
	"github.com/modelcontextprotocol/registry/pkg/model"

	"github.com/stacklok/toolhive-readenv/readenv"
)

const (
	// PublisherNamespace keys this server's entry in the publisher-provided
	// extensions of a registry record.
	PublisherNamespace = "io.github.stacklok"

	// ServerDescription is the registry summary. Registries cap it at 100 characters.
	ServerDescription = "Reads environment variables for AI agents, masking credential values."
)

// ErrNoDistribution is returned when a server record has neither an image nor a URL.
var ErrNoDistribution = errors.New("server needs an OCI image or a remote URL to be published")

// Publication describes a deployment of the server to be listed in an MCP registry.
type Publication struct {
	// Name is a simple name or a reverse-DNS name such as io.github.stacklok/readenv.
	Name    string
	Version string
	// Image is the OCI image that runs the server over stdio.
	Image string
	// URL is the streamable-HTTP endpoint of a running server.
	URL           string
	RepositoryURL string
}

// ServerJSON builds the registry record for p. A record lists an OCI package
// when Image is set and a remote when URL is set; at least one is required.
func ServerJSON(p Publication) (*upstream.ServerJSON, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if p.Image == "" && p.URL == "" {
		return nil, ErrNoDistribution
	}

	version := p.Version
	if version == "" {
		version = "0.0.0"
	}

	serverJSON := &upstream.ServerJSON{
		Schema:      model.CurrentSchemaURL,
		Name:        reverseDNSName(p.Name),
		Title:       readenv.DisplayName,
		Description: ServerDescription,
		Version:     version,
	}
	if p.RepositoryURL != "" {
		serverJSON.Repository = &model.Repository{
			URL:    p.RepositoryURL,
			Source: "github",
		}
	}

	published := make(map[string]interface{}, 2)
	if p.Image != "" {
		serverJSON.Packages = []model.Package{{
			RegistryType: model.RegistryTypeOCI,
			Identifier:   p.Image,
			Transport:    model.Transport{Type: model.TransportTypeStdio},
		}}
		published[p.Image] = extensions()
	}
	if p.URL != "" {
		serverJSON.Remotes = []model.Transport{{
			Type: model.TransportTypeStreamableHTTP,
			URL:  p.URL,
		}}
		published[p.URL] = extensions()
	}

	serverJSON.Meta = &upstream.ServerMeta{
		PublisherProvided: map[string]interface{}{
			PublisherNamespace: published,
		},
	}
	return serverJSON, nil
}

// extensions advertises the tool so catalogs can list it without connecting.
func extensions() map[string]interface{} {
	return map[string]interface{}{
		"status":           "active",
		"tools":            []string{readenv.ToolName},
		"tool_definitions": []mcp.Tool{NewTool()},
	}
}

func reverseDNSName(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return PublisherNamespace + "/" + name
}
