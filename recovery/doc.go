// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for the HTTP transport.
//
// A panicking request is logged and answered with 500 Internal Server Error
// instead of taking the server down.
//
// # Basic Usage
//
//	handler := recovery.Middleware(mcpHandler, logger)
//	http.ListenAndServe("127.0.0.1:8080", handler)
package recovery
