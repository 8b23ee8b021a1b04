// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package envvar provides validation functions for environment variable names.

# Name Validation

	if err := envvar.ValidateName("DATABASE_URL"); err != nil {
		// Handle invalid name
	}

Valid names must:
  - Be non-empty (not just whitespace)
  - Start with an ASCII letter or underscore
  - Contain only ASCII letters, digits, and underscores

Errors wrap ErrEmptyName or ErrInvalidFormat, so callers can branch with
errors.Is while still showing the full message to whoever sent the name.

# Examples

Valid names:

	"PATH"
	"VALID_VAR_NAME"
	"_UNDERSCORE_VAR"
	"var2"

Invalid names:

	""              // empty
	"   "           // whitespace only
	"123invalid"    // leading digit
	"invalid-var"   // dash
	" PATH"         // leading space
*/
package envvar
