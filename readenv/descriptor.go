// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package readenv

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// ToolName is the stable identifier the tool is registered under.
	ToolName = "read_env_var"

	// DisplayName is the human-readable tool name.
	DisplayName = "ReadEnvVar"

	// ToolDescription is shown to the agent when it decides which tool to call.
	ToolDescription = "Reads the value of an environment variable from the current process. " +
		"Returns whether the variable is set and, if so, its value. " +
		"Values of variables whose names suggest credentials (containing \"key\", \"secret\", " +
		"\"password\", \"token\" or \"api\", in any case) are masked in the output shown to the user, " +
		"while the full value is still returned to you."
)

// ErrInvalidArguments is returned when raw call arguments do not match the parameter schema.
var ErrInvalidArguments = errors.New("invalid tool arguments")

//go:embed data/read_env_var.schema.json
var parameterSchema []byte

// Descriptor is the static registration metadata of the tool.
type Descriptor struct {
	Name            string          `json:"name"`
	DisplayName     string          `json:"displayName"`
	Description     string          `json:"description"`
	ParameterSchema json.RawMessage `json:"parameterSchema"`
	// RequiresConfirmation mirrors Tool.ShouldConfirm for hosts that read it statically.
	RequiresConfirmation bool `json:"requiresConfirmation"`
}

// NewDescriptor returns the registration descriptor of the tool.
// The schema is returned as a copy, so callers may modify it.
func NewDescriptor() Descriptor {
	return Descriptor{
		Name:                 ToolName,
		DisplayName:          DisplayName,
		Description:          ToolDescription,
		ParameterSchema:      ParameterSchema(),
		RequiresConfirmation: false,
	}
}

// ParameterSchema returns a copy of the JSON schema describing Params.
func ParameterSchema() json.RawMessage {
	out := make([]byte, len(parameterSchema))
	copy(out, parameterSchema)
	return out
}

// ValidateArguments checks raw JSON call arguments against the parameter
// schema. It only checks shape; the variable name grammar is enforced by
// Tool.Validate so that its messages reach the caller.
func ValidateArguments(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(parameterSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidArguments, strings.Join(msgs, "; "))
}

// DecodeArguments validates raw JSON call arguments and decodes them into Params.
func DecodeArguments(raw []byte) (Params, error) {
	if err := ValidateArguments(raw); err != nil {
		return Params{}, err
	}
	var params Params
	if err := json.Unmarshal(raw, &params); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return params, nil
}
