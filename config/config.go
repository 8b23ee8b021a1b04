// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the readenv server configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/toolhive-readenv/celpolicy"
	"github.com/stacklok/toolhive-readenv/logging"
)

// RelativePath is the location of the config file below the XDG config directories.
var RelativePath = filepath.Join("toolhive-readenv", "config.yaml")

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Defaults.
const (
	DefaultServerName = "toolhive-readenv"
	DefaultAddress    = "127.0.0.1:8080"
)

// Config is the server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Policy PolicyConfig `yaml:"policy"`
}

// ServerConfig selects how the MCP server is exposed.
type ServerConfig struct {
	// Name is the MCP server name reported to clients.
	Name string `yaml:"name"`
	// Transport is "stdio" or "http".
	Transport string `yaml:"transport"`
	// Address is the listen address for the http transport.
	Address string `yaml:"address"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// PolicyConfig adds sensitivity rules on top of the built-in keywords.
type PolicyConfig struct {
	// Expression is an optional CEL bool expression over `name`.
	Expression string `yaml:"expression"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      DefaultServerName,
			Transport: TransportStdio,
			Address:   DefaultAddress,
		},
		Log: LogConfig{
			Format: logging.FormatJSON.String(),
			Level:  "info",
		},
	}
}

// DefaultPath returns the first config.yaml found in the XDG config
// directories, or "" when there is none.
func DefaultPath() string {
	path, err := xdg.SearchConfigFile(RelativePath)
	if err != nil {
		return ""
	}
	return path
}

// Load reads the config at path. An empty path means DefaultPath, and when
// that finds nothing the defaults are returned. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	var errs []error

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Address == "" {
			errs = append(errs, fmt.Errorf("server.address is required for the %s transport", TransportHTTP))
		}
	default:
		errs = append(errs, fmt.Errorf("server.transport %q must be one of %s, %s",
			c.Server.Transport, TransportStdio, TransportHTTP))
	}

	if c.Server.Name == "" {
		errs = append(errs, errors.New("server.name cannot be empty"))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Policy.Expression != "" {
		if err := celpolicy.Check(c.Policy.Expression); err != nil {
			errs = append(errs, fmt.Errorf("policy.expression: %w", err))
		}
	}

	return errors.Join(errs...)
}
