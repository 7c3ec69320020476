// Package provider implements the model.Provider interface for the LLM
// backends the assistant can fall back across (OpenAI, Anthropic,
// Ollama).
//
// The orchestrator stays provider-agnostic: it works with
// model.ChatMessage, model.ToolCall and the declared MCP tool schemas,
// and this package owns every conversion to and from vendor-specific
// request types. Adding a backend means implementing model.Provider and
// adding a case to the factory.
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config holds provider-specific configuration. MaxTokens and
// Temperature bound every request issued through the provider; zero
// values select the defaults below.
type Config struct {
	Type        ProviderType
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Request bounds applied when Config leaves them unset. Output length
// is capped and sampling kept moderate so chart captions stay short and
// reproducible enough to test against.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.7
)

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return DefaultMaxTokens
}

func (c Config) temperature() float64 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return DefaultTemperature
}
