// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides the [log/slog.Logger] factory used by the readenv
server and CLI.

# Defaults

  - Format: JSON ([FormatJSON])
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Configuration

Config files carry format and level as strings; convert them with
[ParseFormat] and [ParseLevel]:

	format, err := logging.ParseFormat(cfg.Log.Format)
	level, err := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(logging.WithFormat(format), logging.WithLevel(level))

# Testing

Inject a buffer to capture log output in tests:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))
*/
package logging
