// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package celpolicy

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for policy operations.
var (
	// ErrExpressionCheck is returned when a policy expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("policy expression check failed")

	// ErrEvaluation is returned when evaluating a policy expression fails.
	ErrEvaluation = errors.New("policy expression evaluation failed")

	// ErrInvalidResult is returned when a policy expression does not produce a bool.
	ErrInvalidResult = errors.New("policy expression must evaluate to bool")
)

// ErrKind identifies the compilation stage an error came from.
type ErrKind string

const (
	// ErrKindParse indicates a syntax error.
	ErrKindParse ErrKind = "parse"
	// ErrKindCheck indicates a type checking error.
	ErrKindCheck ErrKind = "check"
)

// Problem is one issue found in an expression, located by 1-based line and column.
type Problem struct {
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

// CompileError is a parse or type checking failure of a policy expression.
type CompileError struct {
	Kind     ErrKind   `json:"kind"`
	Source   string    `json:"source"`
	Problems []Problem `json:"problems"`
	original error
}

func newCompileError(kind ErrKind, source string, issues *cel.Issues) error {
	ce := &CompileError{
		Kind:     kind,
		Source:   source,
		Problems: make([]Problem, 0, len(issues.Errors())),
		original: fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
	for _, e := range issues.Errors() {
		ce.Problems = append(ce.Problems, Problem{
			Line:    e.Location.Line(),
			Column:  e.Location.Column() + 1,
			Message: e.Message,
		})
	}
	return ce
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("policy %s error in expression %q: %s", e.Kind, e.Source, e.original)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.original
}

// AsJSON renders the error for API responses and logs.
func (e *CompileError) AsJSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"kind":%q,"source":%q}`, e.Kind, e.Source)
	}
	return string(data)
}
