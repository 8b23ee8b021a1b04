// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package mcpserver exposes the read_env_var tool over the Model Context
// Protocol.
//
// Each call result carries two text blocks: the first, for the assistant,
// holds the true value; the second, for the user, holds the masked value.
// The tool is annotated read-only and idempotent, which tells MCP hosts that
// no confirmation is needed before calling it.
package mcpserver
