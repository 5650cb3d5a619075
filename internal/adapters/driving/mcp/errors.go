// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the Matcha collaboration marketplace. It exposes the marketplace
// lifecycle as typed tools for AI assistants.
package mcp

import (
	"encoding/json"
	"errors"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("mcp: required service missing")

// errorCode maps a domain error to a stable machine-readable code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_argument"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, domain.ErrTermsMismatch):
		return "terms_mismatch"
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return "embedding_unavailable"
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		return "generator_unavailable"
	default:
		return "internal"
	}
}

// errorEnvelope is the JSON body of a failed tool call.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorResult converts a domain error into an isError tool result so
// callers see the failure instead of a protocol error.
func errorResult(err error) *sdk.CallToolResult {
	env := errorEnvelope{
		Error: err.Error(),
		Code:  errorCode(err),
	}
	data, marshalErr := json.Marshal(env)
	if marshalErr != nil {
		data = []byte(`{"error":"internal error","code":"internal"}`)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
		IsError: true,
	}
}
