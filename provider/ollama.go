package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"

	"ulapchat/model"
)

// OllamaProvider implements model.Provider against a local Ollama
// server. It is the last-resort fallback candidate: no credentials, no
// quota, works offline.
type OllamaProvider struct {
	client      *api.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOllamaProvider creates a new Ollama provider instance. Returns an
// error if the base URL cannot be parsed.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaProvider{
		client:      api.NewClient(parsedURL, http.DefaultClient),
		model:       modelName,
		maxTokens:   cfg.maxTokens(),
		temperature: cfg.temperature(),
	}, nil
}

// Chat implements model.Provider.Chat by delegating to ChatWithTools
// with no tools.
func (p *OllamaProvider) Chat(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
	return p.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements model.Provider.ChatWithTools.
func (p *OllamaProvider) ChatWithTools(ctx context.Context, messages []model.ChatMessage, tools []mcptypes.Tool, callback model.StreamCallback) error {
	ollamaMessages := make([]api.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = api.Message{Role: msg.Role, Content: msg.Content}
	}

	var ollamaTools []api.Tool
	if len(tools) > 0 {
		ollamaTools = ConvertToolsToOllamaFormat(tools)
	}

	stream := true
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: ollamaMessages,
		Tools:    ollamaTools,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": p.temperature,
			"num_predict": p.maxTokens,
		},
	}

	respFunc := func(resp api.ChatResponse) error {
		if callback == nil {
			return nil
		}
		return callback(resp.Message.Content, convertOllamaToolCalls(resp.Message.ToolCalls))
	}

	if err := p.client.Chat(ctx, req, respFunc); err != nil {
		return fmt.Errorf("Ollama chat error: %w", err)
	}
	return nil
}

// ListModels implements model.Provider.ListModels.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list Ollama models: %w", err)
	}

	result := make([]model.ModelInfo, len(resp.Models))
	for i, m := range resp.Models {
		result[i] = model.ModelInfo{Name: m.Name, Provider: "ollama"}
	}
	return result, nil
}

// GetModel implements model.Provider.GetModel.
func (p *OllamaProvider) GetModel() string {
	return p.model
}

// SetModel implements model.Provider.SetModel.
func (p *OllamaProvider) SetModel(model string) {
	p.model = model
}

// Ping implements model.Provider.Ping with a bounded list call.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.client.List(ctx); err != nil {
		return fmt.Errorf("Ollama ping failed: %w", err)
	}
	return nil
}

// convertOllamaToolCalls converts Ollama tool calls to the
// provider-agnostic form. Returns nil for empty input, matching the
// API's nil semantics.
func convertOllamaToolCalls(calls []api.ToolCall) []model.ToolCall {
	if len(calls) == 0 {
		return nil
	}

	result := make([]model.ToolCall, len(calls))
	for i, call := range calls {
		result[i] = model.ToolCall{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return result
}
