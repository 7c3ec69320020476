package provider

import (
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "ollama with defaults",
			cfg:  Config{Type: ProviderTypeOllama},
		},
		{
			name: "openai with key",
			cfg:  Config{Type: ProviderTypeOpenAI, APIKey: "sk-test"},
		},
		{
			name:    "openai without key",
			cfg:     Config{Type: ProviderTypeOpenAI},
			wantErr: "API key is required",
		},
		{
			name: "anthropic with key",
			cfg:  Config{Type: ProviderTypeAnthropic, APIKey: "sk-ant-test"},
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Type: ProviderTypeAnthropic},
			wantErr: "API key is required",
		},
		{
			name:    "unknown type",
			cfg:     Config{Type: "watson"},
			wantErr: "unknown provider type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewProvider: %v", err)
				}
				if p == nil {
					t.Fatal("NewProvider returned nil provider")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMapProviderIDToType(t *testing.T) {
	tests := []struct {
		id   string
		want ProviderType
	}{
		{"openai", ProviderTypeOpenAI},
		{"anthropic", ProviderTypeAnthropic},
		{"ollama", ProviderTypeOllama},
		{"mystery", ProviderType("mystery")},
	}

	for _, tt := range tests {
		if got := MapProviderIDToType(tt.id); got != tt.want {
			t.Errorf("MapProviderIDToType(%q): got %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestProviderModelDefaults(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderTypeOllama})
	if err != nil {
		t.Fatal(err)
	}
	if p.GetModel() == "" {
		t.Error("expected a default model name")
	}

	p.SetModel("llama3.2:3b")
	if p.GetModel() != "llama3.2:3b" {
		t.Errorf("SetModel: got %q", p.GetModel())
	}
}
