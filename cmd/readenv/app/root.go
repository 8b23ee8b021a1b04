// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app implements the readenv command line.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stacklok/toolhive-readenv/celpolicy"
	"github.com/stacklok/toolhive-readenv/config"
	"github.com/stacklok/toolhive-readenv/env"
	"github.com/stacklok/toolhive-readenv/logging"
	"github.com/stacklok/toolhive-readenv/readenv"
)

const appName = "readenv"

// Version is set at build time with -ldflags "-X .../app.Version=v1.2.3".
var Version = "dev"

type rootOptions struct {
	configPath string
	reader     env.Reader
}

// NewRootCmd builds the readenv command tree reading the process environment.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env.OSReader{})
}

func newRootCmd(reader env.Reader) *cobra.Command {
	opts := &rootOptions{reader: reader}

	root := &cobra.Command{
		Use:           appName,
		Short:         fmt.Sprintf("%s reads environment variables on behalf of AI agents, masking credentials.", appName),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		fmt.Sprintf("configuration file path (default: $XDG_CONFIG_HOME/%s)", config.RelativePath))

	root.AddCommand(
		newServeCmd(opts),
		newCallCmd(opts),
		newDescribeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// newLogger builds the process logger from cfg, writing to w.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.WithFormat(format), logging.WithLevel(level), logging.WithOutput(w)), nil
}

// newTool builds the tool with the configured sensitivity rules added to the
// built-in keywords.
func newTool(cfg *config.Config, reader env.Reader, logger *slog.Logger) (*readenv.Tool, error) {
	var policy readenv.Policy = readenv.KeywordPolicy{}
	if cfg.Policy.Expression != "" {
		extra, err := celpolicy.New(cfg.Policy.Expression, celpolicy.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to compile sensitivity policy: %w", err)
		}
		policy = readenv.AnyOf(policy, extra)
	}
	return readenv.New(
		readenv.WithReader(reader),
		readenv.WithPolicy(policy),
		readenv.WithLogger(logger),
	), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}
