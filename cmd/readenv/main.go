// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command readenv serves the read_env_var tool over MCP and runs it from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stacklok/toolhive-readenv/cmd/readenv/app"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, app.ErrNotSet) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.NewRootCmd().ExecuteContext(ctx)
}
