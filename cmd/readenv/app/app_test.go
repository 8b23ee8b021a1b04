// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	upstream "github.com/modelcontextprotocol/registry/pkg/api/v0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/toolhive-readenv/config"
	"github.com/stacklok/toolhive-readenv/env"
	"github.com/stacklok/toolhive-readenv/mcpserver"
	"github.com/stacklok/toolhive-readenv/validation/envvar"
)

var testEnv = env.MapReader{
	"DATABASE_USER":  "admin",
	"STRIPE_API_KEY": "sk_live_0123456789abcdefghij",
	"SENTRY_DSN":     "https://public@sentry.example/1",
}

// writeConfig writes a config file so tests never pick up the user's own.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(testEnv)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCall(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "log:\n  level: error\n")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "plain variable",
			args: []string{"call", "DATABASE_USER"},
			want: `Environment variable "DATABASE_USER" has value: "admin"`,
		},
		{
			name: "sensitive variable is masked",
			args: []string{"call", "STRIPE_API_KEY"},
			want: `Environment variable "STRIPE_API_KEY" has value: "` + strings.Repeat("*", 20) + `"`,
		},
		{
			name: "agent output is not masked",
			args: []string{"call", "--agent", "STRIPE_API_KEY"},
			want: `Environment variable "STRIPE_API_KEY" has value: "sk_live_0123456789abcdefghij"`,
		},
		{
			name:    "unset variable",
			args:    []string{"call", "NOT_SET_ANYWHERE"},
			want:    `Environment variable "NOT_SET_ANYWHERE" is not set.`,
			wantErr: ErrNotSet,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			stdout, _, err := execute(t, append(tc.args, "--config", cfg)...)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want+"\n", stdout)
		})
	}
}

func TestCall_InvalidName(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	stdout, _, err := execute(t, "call", "invalid-var", "--config", cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, envvar.ErrInvalidFormat)
	assert.Empty(t, stdout)
}

func TestCall_JSON(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	stdout, _, err := execute(t, "call", "--json", "NOT_SET_ANYWHERE", "--config", cfg)
	assert.ErrorIs(t, err, ErrNotSet)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, `Environment variable "NOT_SET_ANYWHERE" is not set.`, res["agentContent"])
	errInfo, ok := res["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ENV_VAR_NOT_FOUND", errInfo["kind"])
}

func TestCall_PolicyFromConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "policy:\n  expression: name.endsWith(\"_DSN\")\n")

	stdout, _, err := execute(t, "call", "SENTRY_DSN", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, `Environment variable "SENTRY_DSN" has value: "`+strings.Repeat("*", 20)+`"`+"\n", stdout)

	stdout, _, err = execute(t, "call", "STRIPE_API_KEY", "--config", cfg)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "sk_live", "configured rules add to the keywords")
}

func TestCall_DebugLogsGoToStderr(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "log:\n  level: debug\n  format: text\n")
	stdout, stderr, err := execute(t, "call", "STRIPE_API_KEY", "--config", cfg)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "level=")
	assert.Contains(t, stderr, "STRIPE_API_KEY")
	assert.NotContains(t, stderr, "sk_live")
}

func TestCall_BadConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "log:\n  format: xml\n")
	_, _, err := execute(t, "call", "DATABASE_USER", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "describe")
	require.NoError(t, err)

	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &d))
	assert.Equal(t, "read_env_var", d["name"])
	assert.Equal(t, "ReadEnvVar", d["displayName"])
	assert.Equal(t, false, d["requiresConfirmation"])

	stdout, _, err = execute(t, "describe", "--mcp")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &d))
	assert.Equal(t, "read_env_var", d["name"])
	assert.Contains(t, d, "inputSchema")
}

func TestDescribe_Server(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "server:\n  name: readenv\n  transport: http\n  address: 127.0.0.1:9090\n")
	stdout, _, err := execute(t, "describe", "--server", "--image", "ghcr.io/stacklok/readenv:dev", "--config", cfg)
	require.NoError(t, err)

	var serverJSON upstream.ServerJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &serverJSON))
	assert.Equal(t, "io.github.stacklok/readenv", serverJSON.Name)
	assert.Equal(t, Version, serverJSON.Version)
	require.Len(t, serverJSON.Packages, 1)
	assert.Equal(t, "ghcr.io/stacklok/readenv:dev", serverJSON.Packages[0].Identifier)
	require.Len(t, serverJSON.Remotes, 1)
	assert.Equal(t, "http://127.0.0.1:9090/mcp", serverJSON.Remotes[0].URL)
}

func TestDescribe_ServerErrors(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	_, _, err := execute(t, "describe", "--server", "--config", cfg)
	assert.ErrorIs(t, err, mcpserver.ErrNoDistribution)

	_, _, err = execute(t, "describe", "--server", "--mcp", "--config", cfg)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "readenv version "+Version+"\n", stdout)
}

func TestServe_InvalidTransportFlag(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	_, _, err := execute(t, "serve", "--transport", "grpc", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.transport")
}

func TestServeHTTP_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tool, err := newTool(config.Default(), testEnv, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	s := mcpserver.New("toolhive-readenv", Version, tool, nil)

	assert.NoError(t, serveHTTP(ctx, "127.0.0.1:0", s, slog.New(slog.DiscardHandler)))
}
