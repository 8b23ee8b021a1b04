// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import "os"

// Reader defines a read-only interface for environment variable access
type Reader interface {
	// Getenv returns the value of the variable, or "" when it is unset
	Getenv(key string) string
	// LookupEnv returns the value of the variable and whether it is set.
	// A variable set to the empty string is reported as present.
	LookupEnv(key string) (string, bool)
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv returns the value of the environment variable named by the key
// and reports whether it was present in the process environment
func (*OSReader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapReader implements Reader over a fixed set of variables.
// Keys are matched exactly, without case folding.
type MapReader map[string]string

// Getenv returns the mapped value for key, or "" when it is absent
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// LookupEnv returns the mapped value for key and whether it is present
func (m MapReader) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
