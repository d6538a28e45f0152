// Package llm is the thin client layer for the tutor's language-model calls.
// Every backend (Gemini, OpenAI, OpenRouter, Anthropic, mock) implements
// Provider; retry and event logging wrap it as decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a language model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output is JSON validated against it; otherwise Content holds
	// the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider is configured to use.
	ModelID() string
}

// Request describes a single-turn or multi-turn prompt.
type Request struct {
	// System sets the model's role and output rules.
	System string

	Messages []Message

	// Schema, when set, asks the provider for structured JSON output.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "circuit-explanation". It doubles as the
	// cache key for compiled schemas.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output for one request.
type Response struct {
	// Content is validated JSON when a schema was requested, raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
