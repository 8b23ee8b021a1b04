// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/toolhive-readenv/env"
	"github.com/stacklok/toolhive-readenv/readenv"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = readenv.ToolName
	req.Params.Arguments = args
	return req
}

func textBlocks(t *testing.T, res *mcp.CallToolResult) []mcp.TextContent {
	t.Helper()
	blocks := make([]mcp.TextContent, 0, len(res.Content))
	for _, c := range res.Content {
		tc, ok := c.(mcp.TextContent)
		require.True(t, ok, "expected text content, got %T", c)
		blocks = append(blocks, tc)
	}
	return blocks
}

func TestNewTool(t *testing.T) {
	t.Parallel()

	tool := NewTool()
	assert.Equal(t, "read_env_var", tool.Name)
	assert.Contains(t, tool.Description, "masked")
	assert.Equal(t, "ReadEnvVar", tool.Annotations.Title)

	require.NotNil(t, tool.Annotations.ReadOnlyHint)
	assert.True(t, *tool.Annotations.ReadOnlyHint)
	require.NotNil(t, tool.Annotations.DestructiveHint)
	assert.False(t, *tool.Annotations.DestructiveHint)
	require.NotNil(t, tool.Annotations.IdempotentHint)
	assert.True(t, *tool.Annotations.IdempotentHint)

	data, err := json.Marshal(tool)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	schema, ok := decoded["inputSchema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"variableName"}, schema["required"])
}

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	reader := env.MapReader{
		"TEST_READ_ENV_VAR_FOO": "test_value_123",
		"API_KEY_TEST_VAR":      "super_secret_api_key_value",
	}
	h := NewHandler(readenv.New(readenv.WithReader(reader)), nil)

	t.Run("plain variable", func(t *testing.T) {
		t.Parallel()
		res, err := h.Handle(context.Background(), callRequest(map[string]any{"variableName": "TEST_READ_ENV_VAR_FOO"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		blocks := textBlocks(t, res)
		require.Len(t, blocks, 2)
		want := `Environment variable "TEST_READ_ENV_VAR_FOO" has value: "test_value_123"`
		assert.Equal(t, want, blocks[0].Text)
		assert.Equal(t, want, blocks[1].Text)
		assert.Equal(t, []mcp.Role{mcp.RoleAssistant}, blocks[0].Annotations.Audience)
		assert.Equal(t, []mcp.Role{mcp.RoleUser}, blocks[1].Annotations.Audience)

		assert.Equal(t, CallSummary{VariableName: "TEST_READ_ENV_VAR_FOO", Found: true}, res.StructuredContent)
	})

	t.Run("sensitive variable", func(t *testing.T) {
		t.Parallel()
		res, err := h.Handle(context.Background(), callRequest(map[string]any{"variableName": "API_KEY_TEST_VAR"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		blocks := textBlocks(t, res)
		require.Len(t, blocks, 2)
		assert.Contains(t, blocks[0].Text, "super_secret_api_key_value")
		assert.Contains(t, blocks[1].Text, `"`+strings.Repeat("*", 20)+`"`)
		assert.NotContains(t, blocks[1].Text, "super_secret")

		summary, ok := res.StructuredContent.(CallSummary)
		require.True(t, ok)
		assert.True(t, summary.Masked)

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(data), "super_secret_api_key_value"),
			"the value appears only in the assistant block")
	})

	t.Run("unset variable", func(t *testing.T) {
		t.Parallel()
		res, err := h.Handle(context.Background(), callRequest(map[string]any{"variableName": "MISSING_VAR"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)

		blocks := textBlocks(t, res)
		require.Len(t, blocks, 2)
		assert.Equal(t, `Environment variable "MISSING_VAR" is not set.`, blocks[0].Text)
		assert.Equal(t, blocks[0].Text, blocks[1].Text)

		summary, ok := res.StructuredContent.(CallSummary)
		require.True(t, ok)
		assert.False(t, summary.Found)
		require.NotNil(t, summary.Error)
		assert.Equal(t, readenv.ErrorKindEnvVarNotFound, summary.Error.Kind)
		assert.Equal(t, `Environment variable "MISSING_VAR" not found`, summary.Error.Message)
	})
}

func TestHandler_Handle_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	h := NewHandler(readenv.New(readenv.WithReader(env.MapReader{})), nil)

	tests := []struct {
		name        string
		args        map[string]any
		errContains string
	}{
		{"missing argument", map[string]any{}, "variableName is required"},
		{"no arguments", nil, "invalid tool arguments"},
		{"wrong type", map[string]any{"variableName": 12}, "variableName"},
		{"empty name", map[string]any{"variableName": ""}, "cannot be empty"},
		{"invalid name", map[string]any{"variableName": "invalid-var"}, `"invalid-var"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := h.Handle(context.Background(), callRequest(tc.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Nil(t, res.StructuredContent)

			blocks := textBlocks(t, res)
			require.Len(t, blocks, 1)
			assert.Contains(t, blocks[0].Text, tc.errContains)
		})
	}
}
