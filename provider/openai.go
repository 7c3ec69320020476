package provider

import (
	"context"
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"ulapchat/model"
)

// OpenAIProvider implements model.Provider using the official OpenAI Go
// SDK.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOpenAIProvider creates a new OpenAI provider instance. Returns an
// error if the API key is missing.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
	)

	return &OpenAIProvider{
		client:      client,
		model:       modelName,
		maxTokens:   cfg.maxTokens(),
		temperature: cfg.temperature(),
	}, nil
}

// Chat implements model.Provider.Chat by delegating to ChatWithTools
// with no tools.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
	return p.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements model.Provider.ChatWithTools with streaming
// support.
func (p *OpenAIProvider) ChatWithTools(ctx context.Context, messages []model.ChatMessage, tools []mcptypes.Tool, callback model.StreamCallback) error {
	openaiMessages := ConvertToOpenAIMessages(messages)

	params := openai.ChatCompletionNewParams{
		Messages:            openaiMessages,
		Model:               openai.ChatModel(p.model),
		MaxCompletionTokens: openai.Int(int64(p.maxTokens)),
		Temperature:         openai.Float(p.temperature),
	}
	if len(tools) > 0 {
		params.Tools = ConvertToolsToOpenAIFormat(tools)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	acc := openai.ChatCompletionAccumulator{}

	var apiToolCallsDetected bool
	var contentBuilder strings.Builder

	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if tool, ok := acc.JustFinishedToolCall(); ok {
			apiToolCallsDetected = true
			if callback != nil {
				call := model.ToolCall{
					Name:      tool.Name,
					Arguments: ParseToolArguments(tool.Arguments),
				}
				if err := callback("", []model.ToolCall{call}); err != nil {
					return err
				}
			}
		}

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			content := chunk.Choices[0].Delta.Content
			contentBuilder.WriteString(content)
			if callback != nil {
				if err := callback(content, nil); err != nil {
					return err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("OpenAI streaming error: %w", err)
	}

	// Safety net: some models emit the tool call as JSON text instead
	// of the structured field.
	if !apiToolCallsDetected && callback != nil {
		if leaked := ParseLeakedJSONToolCalls(contentBuilder.String()); len(leaked) > 0 {
			return callback("", leaked)
		}
	}

	return nil
}

// ListModels implements model.Provider.ListModels.
func (p *OpenAIProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}

	result := make([]model.ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		result = append(result, model.ModelInfo{Name: m.ID, Provider: "openai"})
	}
	return result, nil
}

// GetModel implements model.Provider.GetModel.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// SetModel implements model.Provider.SetModel.
func (p *OpenAIProvider) SetModel(model string) {
	p.model = model
}

// Ping implements model.Provider.Ping by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", err)
	}
	return nil
}
