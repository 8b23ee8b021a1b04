// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package envvar provides validation functions for environment variable names.
package envvar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyName is returned when a variable name is empty or only whitespace.
	ErrEmptyName = errors.New("environment variable name cannot be empty")

	// ErrInvalidFormat is returned when a variable name does not follow the identifier grammar.
	ErrInvalidFormat = errors.New("invalid environment variable name")
)

var validNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateName validates that name is a usable environment variable name:
// the first character is an ASCII letter or underscore, and every other
// character is an ASCII letter, digit or underscore.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w or consist only of whitespace", ErrEmptyName)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf("%w %q: must start with a letter (A-Z, a-z) or underscore, "+
			"and may only contain letters, digits (0-9), and underscores", ErrInvalidFormat, name)
	}

	return nil
}
