// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/toolhive-readenv/config"
	"github.com/stacklok/toolhive-readenv/readenv"
)

// ErrNotSet is returned by the call command when the variable is not set.
// The absence message has already been printed when it is returned.
var ErrNotSet = errors.New("environment variable is not set")

func newCallCmd(opts *rootOptions) *cobra.Command {
	var agent, asJSON bool

	cmd := &cobra.Command{
		Use:   "call NAME",
		Short: "read one environment variable the way the tool would",
		Long: "Runs the read_env_var tool once and prints the user-facing output, " +
			"in which credentials are masked. Use --agent to print the unmasked agent-facing output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tool, err := newTool(cfg, opts.reader, logger)
			if err != nil {
				return err
			}

			res, err := tool.Run(cmd.Context(), readenv.Params{VariableName: args[0]})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			case agent:
				fmt.Fprintln(out, res.AgentContent)
			default:
				fmt.Fprintln(out, res.DisplayContent)
			}

			if res.Error != nil {
				return ErrNotSet
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&agent, "agent", false, "print the agent-facing output, including unmasked values")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result, both channels, as JSON")
	return cmd
}
