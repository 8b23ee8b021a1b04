// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stacklok/toolhive-readenv/readenv"
)

// CallSummary is the structured content attached to every successful call.
// It never carries the variable value.
type CallSummary struct {
	VariableName string             `json:"variableName"`
	Found        bool               `json:"found"`
	Masked       bool               `json:"masked"`
	Error        *readenv.ErrorInfo `json:"error,omitempty"`
}

// NewTool returns the MCP definition of the read_env_var tool.
func NewTool() mcp.Tool {
	d := readenv.NewDescriptor()
	tool := mcp.NewToolWithRawSchema(d.Name, d.Description, d.ParameterSchema)
	tool.Annotations = mcp.ToolAnnotation{
		Title:           d.DisplayName,
		ReadOnlyHint:    mcp.ToBoolPtr(true),
		DestructiveHint: mcp.ToBoolPtr(false),
		IdempotentHint:  mcp.ToBoolPtr(true),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}
	return tool
}

// Handler serves read_env_var tool calls.
type Handler struct {
	tool   *readenv.Tool
	logger *slog.Logger
}

// NewHandler creates a Handler around tool. A nil logger discards output.
func NewHandler(tool *readenv.Tool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{tool: tool, logger: logger}
}

// Handle implements server.ToolHandlerFunc. Invalid arguments are returned
// as error results without executing; they never surface as Go errors.
func (h *Handler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params, err := readenv.DecodeArguments(raw)
	if err != nil {
		h.logger.Debug("rejected tool call", "tool", readenv.ToolName, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.tool.Validate(params); err != nil {
		h.logger.Debug("rejected tool call", "tool", readenv.ToolName, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.logger.Info(h.tool.Description(params), "tool", readenv.ToolName)
	return toCallToolResult(params, h.tool.Execute(ctx, params)), nil
}

// toCallToolResult maps the two channels onto audience-annotated text blocks.
func toCallToolResult(params readenv.Params, res *readenv.Result) *mcp.CallToolResult {
	agent := mcp.NewTextContent(res.AgentContent)
	agent.Annotations = &mcp.Annotations{Audience: []mcp.Role{mcp.RoleAssistant}}

	display := mcp.NewTextContent(res.DisplayContent)
	display.Annotations = &mcp.Annotations{Audience: []mcp.Role{mcp.RoleUser}}

	return &mcp.CallToolResult{
		Content: []mcp.Content{agent, display},
		StructuredContent: CallSummary{
			VariableName: params.VariableName,
			Found:        res.Found(),
			Masked:       res.Masked,
			Error:        res.Error,
		},
		IsError: res.Error != nil,
	}
}
