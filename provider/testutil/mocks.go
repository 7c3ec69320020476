package testutil

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"ulapchat/model"
)

// MockProvider implements model.Provider for testing.
type MockProvider struct {
	// Configurable responses
	ChatFunc          func(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error
	ChatWithToolsFunc func(ctx context.Context, messages []model.ChatMessage, tools []mcptypes.Tool, callback model.StreamCallback) error
	ListModelsFunc    func(ctx context.Context) ([]model.ModelInfo, error)
	PingFunc          func(ctx context.Context) error

	// Call recording
	Calls int

	currentModel string
}

// NewMockProvider creates a mock provider with default implementations.
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{currentModel: modelName}
	mock.ChatFunc = mock.defaultChat
	mock.ChatWithToolsFunc = mock.defaultChatWithTools
	mock.ListModelsFunc = mock.defaultListModels
	mock.PingFunc = mock.defaultPing
	return mock
}

// TextProvider returns a mock that always replies with the given text.
func TextProvider(name, text string) *MockProvider {
	m := NewMockProvider(name)
	m.ChatWithToolsFunc = func(_ context.Context, _ []model.ChatMessage, _ []mcptypes.Tool, callback model.StreamCallback) error {
		return callback(text, nil)
	}
	m.ChatFunc = func(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
		return m.ChatWithToolsFunc(ctx, messages, nil, callback)
	}
	return m
}

// FailingProvider returns a mock whose chat calls always fail with err.
func FailingProvider(name string, err error) *MockProvider {
	m := NewMockProvider(name)
	m.ChatWithToolsFunc = func(context.Context, []model.ChatMessage, []mcptypes.Tool, model.StreamCallback) error {
		return err
	}
	m.ChatFunc = func(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
		return m.ChatWithToolsFunc(ctx, messages, nil, callback)
	}
	return m
}

// ToolCallProvider returns a mock that requests the given tool call on
// tool-enabled turns and replies with caption text on plain turns.
func ToolCallProvider(name string, call model.ToolCall, caption string) *MockProvider {
	m := NewMockProvider(name)
	m.ChatWithToolsFunc = func(_ context.Context, _ []model.ChatMessage, tools []mcptypes.Tool, callback model.StreamCallback) error {
		if len(tools) > 0 {
			return callback("", []model.ToolCall{call})
		}
		return callback(caption, nil)
	}
	m.ChatFunc = func(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
		return m.ChatWithToolsFunc(ctx, messages, nil, callback)
	}
	return m
}

func (m *MockProvider) defaultChat(_ context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
	if len(messages) > 0 {
		return callback("Mock response", nil)
	}
	return nil
}

func (m *MockProvider) defaultChatWithTools(_ context.Context, _ []model.ChatMessage, _ []mcptypes.Tool, callback model.StreamCallback) error {
	return callback("Mock response with tools", nil)
}

func (m *MockProvider) defaultListModels(_ context.Context) ([]model.ModelInfo, error) {
	return []model.ModelInfo{
		{Name: "mock-model-1", Provider: "mock"},
		{Name: "mock-model-2", Provider: "mock"},
	}, nil
}

func (m *MockProvider) defaultPing(_ context.Context) error {
	return nil
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.ChatMessage, callback model.StreamCallback) error {
	m.Calls++
	return m.ChatFunc(ctx, messages, callback)
}

func (m *MockProvider) ChatWithTools(ctx context.Context, messages []model.ChatMessage, tools []mcptypes.Tool, callback model.StreamCallback) error {
	m.Calls++
	return m.ChatWithToolsFunc(ctx, messages, tools, callback)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}
