// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package readenv implements the read_env_var agent tool: given the name of an
environment variable, it reports whether the variable is set and, if so,
its value.

# Channels

Every Result carries two renderings of the same outcome. AgentContent is
meant for the model and always holds the true value. DisplayContent is
meant for a human watching the transcript; when the variable name looks
like it holds a credential the value is replaced by up to 20 asterisks.

	tool := readenv.New()
	res, err := tool.Run(ctx, readenv.Params{VariableName: "OPENAI_API_KEY"})
	if err != nil {
		// invalid name; err.Error() is the message for the caller
	}
	fmt.Println(res.DisplayContent) // Environment variable "OPENAI_API_KEY" has value: "********************"

A variable that is not set is not a Go error. The Result still carries
content for both channels, and Result.Error holds a structured ErrorInfo
with kind ENV_VAR_NOT_FOUND.

# Sensitivity

The default KeywordPolicy lower-cases the name and looks for any of
SensitiveKeywords as a substring. Use WithPolicy to replace it, or AnyOf to
add rules on top of it:

	tool := readenv.New(readenv.WithPolicy(readenv.AnyOf(readenv.KeywordPolicy{}, extra)))

# Testing

Inject an env.MapReader instead of touching the process environment:

	tool := readenv.New(readenv.WithReader(env.MapReader{"FOO": "bar"}))
*/
package readenv
