// Package genai wraps the external schema-constrained text-generation
// capability. Callers declare a prompt and the JSON shape the output must
// satisfy; they get back a validated raw JSON document or ErrNoOutput.
package genai

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoOutput is returned when the generation call succeeded at the transport
// level but produced no usable structured output: no choices, no JSON document
// in the reply, or a document that fails the declared schema. Transport
// failures are returned as ordinary wrapped errors, not ErrNoOutput.
var ErrNoOutput = errors.New("generation produced no structured output")

// Request describes one generation invocation.
type Request struct {
	Operation string // short label for logs and metrics, e.g. "filter-extraction"
	System    string // system role instruction
	Prompt    string // user prompt, including the enumerated inputs
	Schema    string // JSON schema the structured output must satisfy; empty skips validation
}

// Generator is the generation capability the pipeline depends on. Tests
// inject deterministic fakes; production wires the OpenAI-backed Client.
type Generator interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}
