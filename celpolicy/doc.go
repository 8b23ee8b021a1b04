// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package celpolicy lets operators add variable-name sensitivity rules written
in CEL (https://cel.dev) on top of the built-in keyword list.

The expression sees one variable, `name` (string), and must evaluate to a
bool. The CEL string extension library is loaded, so functions such as
lowerAscii, upperAscii and replace are available alongside the standard
contains, startsWith, endsWith and matches.

	policy, err := celpolicy.New(`name.lowerAscii().endsWith("_dsn")`)
	if err != nil {
		var ce *celpolicy.CompileError
		if errors.As(err, &ce) {
			fmt.Println(ce.AsJSON())
		}
		return err
	}
	tool := readenv.New(readenv.WithPolicy(readenv.AnyOf(readenv.KeywordPolicy{}, policy)))

Expressions are limited in length and evaluation cost.
*/
package celpolicy
