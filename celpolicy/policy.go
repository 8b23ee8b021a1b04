// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package celpolicy

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

const (
	// VariableName is the CEL variable holding the environment variable name.
	VariableName = "name"

	// MaxExpressionLength is the longest expression accepted.
	MaxExpressionLength = 4096

	// CostLimit is the runtime cost limit for a single evaluation.
	CostLimit = 100000
)

var (
	envOnce sync.Once
	celEnv  *cel.Env
	envErr  error
)

// environment returns the shared CEL environment, creating it on first use.
func environment() (*cel.Env, error) {
	envOnce.Do(func() {
		celEnv, envErr = cel.NewEnv(
			cel.Variable(VariableName, cel.StringType),
			ext.Strings(),
		)
	})
	return celEnv, envErr
}

// Policy classifies variable names as sensitive with a CEL expression over
// the string variable `name`, for example:
//
//	name.lowerAscii().endsWith("_dsn") || name.matches("^AWS_")
//
// It is safe for concurrent use.
type Policy struct {
	source  string
	program cel.Program
	logger  *slog.Logger
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger sets the logger used to report evaluation failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = l
	}
}

// New compiles expr into a Policy. It returns a *CompileError for syntax or
// type errors and an error wrapping ErrInvalidResult when expr is not a
// bool expression.
func New(expr string, opts ...Option) (*Policy, error) {
	ast, err := compile(expr)
	if err != nil {
		return nil, err
	}

	env, err := environment()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	program, err := env.Program(ast, cel.CostLimit(CostLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}

	p := &Policy{
		source:  expr,
		program: program,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Check verifies expr without building a program. Use it for configuration validation.
func Check(expr string) error {
	_, err := compile(expr)
	return err
}

func compile(expr string) (*cel.Ast, error) {
	if len(expr) > MaxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), MaxExpressionLength)
	}

	env, err := environment()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newCompileError(ErrKindParse, expr, issues)
	}

	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, newCompileError(ErrKindCheck, expr, issues)
	}

	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrInvalidResult, expr, checked.OutputType())
	}
	return checked, nil
}

// Source returns the expression the policy was compiled from.
func (p *Policy) Source() string {
	return p.source
}

// Evaluate runs the expression for name.
func (p *Policy) Evaluate(name string) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{VariableName: name})
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrInvalidResult, out.Value())
	}
	return result, nil
}

// IsSensitive implements readenv.Policy. A failed evaluation counts as
// sensitive, so a broken rule masks rather than leaks.
func (p *Policy) IsSensitive(name string) bool {
	sensitive, err := p.Evaluate(name)
	if err != nil {
		p.logger.Warn("sensitivity policy evaluation failed, masking value",
			"name", name, "expression", p.source, "error", err)
		return true
	}
	return sensitive
}
