package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"ulapchat/model"
)

// AnthropicProvider implements model.Provider using the official
// Anthropic Go SDK.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       anthropic.Model
	maxTokens   int
	temperature float64
}

// NewAnthropicProvider creates a new Anthropic provider instance.
// Returns an error if the API key is missing.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	anthropicModel := anthropic.ModelClaude3_5Haiku20241022
	if cfg.Model != "" {
		anthropicModel = anthropic.Model(cfg.Model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
	)

	return &AnthropicProvider{
		client:      &client,
		model:       anthropicModel,
		maxTokens:   cfg.maxTokens(),
		temperature: cfg.temperature(),
	}, nil
}

// Chat implements model.Provider.Chat by delegating to ChatWithTools
// with no tools.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
	return p.ChatWithTools(ctx, messages, nil, callback)
}

// ChatWithTools implements model.Provider.ChatWithTools with streaming
// support.
func (p *AnthropicProvider) ChatWithTools(ctx context.Context, messages []model.ChatMessage, tools []mcptypes.Tool, callback model.StreamCallback) error {
	anthropicMessages, systemPrompt := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:       p.model,
		Messages:    anthropicMessages,
		MaxTokens:   int64(p.maxTokens),
		Temperature: anthropic.Float(p.temperature),
	}
	if len(systemPrompt) > 0 {
		params.System = systemPrompt
	}
	if len(tools) > 0 {
		params.Tools = ConvertToolsToAnthropicFormat(tools)
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	msg := anthropic.Message{}

	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return fmt.Errorf("error accumulating message: %w", err)
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if callback != nil {
					if err := callback(deltaVariant.Text, nil); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("Anthropic streaming error: %w", err)
	}

	// Tool calls appear as content blocks on the accumulated message.
	if callback != nil {
		if toolCalls := extractAnthropicToolCalls(msg.Content); len(toolCalls) > 0 {
			return callback("", toolCalls)
		}
	}

	return nil
}

// ListModels implements model.Provider.ListModels. Anthropic has no
// models-list endpoint, so this returns a curated set.
func (p *AnthropicProvider) ListModels(_ context.Context) ([]model.ModelInfo, error) {
	models := []anthropic.Model{
		anthropic.ModelClaudeSonnet4_5_20250929,
		anthropic.ModelClaude3_5Haiku20241022,
		anthropic.ModelClaude_3_Haiku_20240307,
	}

	result := make([]model.ModelInfo, 0, len(models))
	for _, m := range models {
		result = append(result, model.ModelInfo{Name: string(m), Provider: "anthropic"})
	}
	return result, nil
}

// GetModel implements model.Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// SetModel implements model.Provider.SetModel.
func (p *AnthropicProvider) SetModel(model string) {
	p.model = anthropic.Model(model)
}

// Ping implements model.Provider.Ping with a minimal one-token request.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}

// convertToAnthropicMessages converts wire messages to Anthropic
// format. System messages move to the separate system parameter.
func convertToAnthropicMessages(messages []model.ChatMessage) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	anthropicMsgs := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content})
		case "assistant":
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			// "user", "tool" and anything else go to the user turn.
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	return anthropicMsgs, systemBlocks
}

// extractAnthropicToolCalls extracts tool calls from accumulated
// message content.
func extractAnthropicToolCalls(content []anthropic.ContentBlockUnion) []model.ToolCall {
	var toolCalls []model.ToolCall

	for _, block := range content {
		if toolUse, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			var args map[string]any
			if err := json.Unmarshal(toolUse.Input, &args); err != nil {
				continue
			}
			toolCalls = append(toolCalls, model.ToolCall{
				Name:      toolUse.Name,
				Arguments: args,
			})
		}
	}

	return toolCalls
}
