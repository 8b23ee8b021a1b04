// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based, read-only abstraction for
environment variable access, enabling dependency injection and testing
isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value, ok := reader.LookupEnv("MY_VAR")

# Testing

MapReader substitutes a controlled mapping for the process environment:

	reader := env.MapReader{"MY_VAR": "test-value"}

A generated mock is available in the mocks sub-package when a test needs
to assert on the exact lookups performed:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().LookupEnv("MY_VAR").Return("test-value", true)

# Design

Production code accepts an env.Reader and never touches os directly.
Nothing in this package writes to the environment.
*/
package env
