// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package readenv

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/stacklok/toolhive-readenv/env"
	"github.com/stacklok/toolhive-readenv/validation/envvar"
)

// ErrorKind identifies a structured, non-fatal execution outcome.
type ErrorKind string

const (
	// ErrorKindEnvVarNotFound means the requested variable is not set.
	ErrorKindEnvVarNotFound ErrorKind = "ENV_VAR_NOT_FOUND"
)

// Valid reports whether k is a known error kind.
func (k ErrorKind) Valid() bool {
	switch k {
	case ErrorKindEnvVarNotFound:
		return true
	}
	return false
}

// Params are the parameters of a single invocation.
type Params struct {
	VariableName string `json:"variableName"`
}

// ErrorInfo describes a structured execution failure.
type ErrorInfo struct {
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind"`
}

// Result is the dual-channel outcome of Execute.
type Result struct {
	// AgentContent always carries the true value when the variable is set.
	AgentContent string `json:"agentContent"`
	// DisplayContent is AgentContent with the value masked for sensitive names.
	DisplayContent string `json:"displayContent"`
	// Error is set only when the variable is not set.
	Error *ErrorInfo `json:"error,omitempty"`
	// Masked reports whether the name was classified as sensitive.
	Masked bool `json:"-"`
}

// Found reports whether the lookup found the variable.
func (r *Result) Found() bool {
	return r.Error == nil
}

// Tool reads a single environment variable by name. It never modifies the
// environment and keeps no state between calls, so it is safe for
// concurrent use.
type Tool struct {
	reader env.Reader
	policy Policy
	logger *slog.Logger
}

// Option configures a Tool.
type Option func(*Tool)

// WithReader sets the environment accessor. The default is [env.OSReader].
func WithReader(r env.Reader) Option {
	return func(t *Tool) {
		t.reader = r
	}
}

// WithPolicy sets the sensitivity policy. The default is [KeywordPolicy].
func WithPolicy(p Policy) Option {
	return func(t *Tool) {
		t.policy = p
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tool) {
		t.logger = l
	}
}

// New creates a Tool.
func New(opts ...Option) *Tool {
	t := &Tool{
		reader: &env.OSReader{},
		policy: KeywordPolicy{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Validate checks params before execution. The returned error's message is
// meant to be shown to the caller as-is.
func (*Tool) Validate(params Params) error {
	return envvar.ValidateName(params.VariableName)
}

// Execute looks up params.VariableName. A missing variable is reported
// through Result.Error, never as a Go error. The context is accepted for
// uniformity with other tools; the lookup cannot block.
func (t *Tool) Execute(_ context.Context, params Params) *Result {
	name := params.VariableName

	value, ok := t.reader.LookupEnv(name)
	if !ok {
		t.logger.Debug("environment variable not set", "name", name)
		content := fmt.Sprintf("Environment variable \"%s\" is not set.", name)
		return &Result{
			AgentContent:   content,
			DisplayContent: content,
			Error: &ErrorInfo{
				Message: fmt.Sprintf("Environment variable \"%s\" not found", name),
				Kind:    ErrorKindEnvVarNotFound,
			},
		}
	}

	display := value
	masked := t.policy.IsSensitive(name)
	if masked {
		display = Mask(value)
	}
	t.logger.Debug("environment variable read", "name", name, "masked", masked)

	return &Result{
		AgentContent:   formatValue(name, value),
		DisplayContent: formatValue(name, display),
		Masked:         masked,
	}
}

// Run validates params and, if they are valid, executes the lookup.
func (t *Tool) Run(ctx context.Context, params Params) (*Result, error) {
	if err := t.Validate(params); err != nil {
		return nil, err
	}
	return t.Execute(ctx, params), nil
}

// Description returns a one-line summary of the pending action.
func (*Tool) Description(params Params) string {
	return "Reading environment variable: " + params.VariableName
}

// ShouldConfirm reports whether the host must ask the user before
// executing. Reading a variable has no side effects, so it never does.
func (*Tool) ShouldConfirm(_ context.Context, _ Params) bool {
	return false
}

// formatValue quotes name and value literally without escaping, so the agent
// sees exactly the bytes that were set.
func formatValue(name, value string) string {
	return fmt.Sprintf("Environment variable \"%s\" has value: \"%s\"", name, value)
}
