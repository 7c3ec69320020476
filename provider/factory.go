package provider

import (
	"fmt"

	"ulapchat/model"
)

// NewProvider creates a provider based on configuration.
//
// Returns an error if the provider type is unknown or the
// provider-specific constructor fails (missing API key, invalid URL).
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a factory
// ProviderType. Unknown IDs pass through as-is and the factory errors.
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "openai":
		return ProviderTypeOpenAI
	case "anthropic":
		return ProviderTypeAnthropic
	case "ollama":
		return ProviderTypeOllama
	default:
		return ProviderType(id)
	}
}
