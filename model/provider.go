package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// ChatMessage is a provider-agnostic wire message. The Role values
// follow the common chat-completion convention: "system", "user",
// "assistant", "tool".
type ChatMessage struct {
	Role    string
	Content string
}

// ToolCall is a provider-agnostic function-call request extracted from
// a model response.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// ModelInfo describes one model offered by a provider.
type ModelInfo struct {
	Name     string
	Provider string
}

// Provider abstracts LLM provider implementations (OpenAI, Anthropic,
// Ollama) behind provider-agnostic types.
//
// The interface lives in the model package rather than the provider
// package to avoid import cycles: provider implementations import
// model, and the assistant orchestrator depends only on this interface.
type Provider interface {
	// Chat sends messages and streams the response back via callback.
	Chat(ctx context.Context, messages []ChatMessage, callback StreamCallback) error

	// ChatWithTools sends messages with declared tools. Tool calls the
	// model makes are surfaced through the callback.
	ChatWithTools(ctx context.Context, messages []ChatMessage, tools []mcptypes.Tool, callback StreamCallback) error

	// ListModels returns the models available from this provider.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// GetModel returns the currently selected model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each chunk of a streamed response and
// for any tool calls the model requests.
type StreamCallback func(chunk string, toolCalls []ToolCall) error
