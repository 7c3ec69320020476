package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/ulapchat",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Ollama: OllamaConfig{
			Host:         "http://localhost:11434",
			DefaultModel: "llama3.2:3b",
		},
		Candidates: []CandidateConfig{
			{Provider: "ollama", Model: "llama3.2:3b"},
		},
		HistoryLimit: 50,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Ulap Chat System Configuration
# Location: ~/.config/ulapchat/settings.toml
# This file uses TOML format: https://toml.io

# Directory where chat sessions and user config are stored
data_directory = "~/.local/share/ulapchat"
`
}

func GenerateUserConfigTemplate() string {
	return `# Ulap Chat User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[ollama]
# Ollama server URL
host = "http://localhost:11434"

# Default model when no candidate list is configured
default_model = "llama3.2:3b"

# Path to a JSON product catalog. Leave empty to use the built-in
# demo catalog.
catalog_file = ""

# How many archived sessions to keep, newest first
history_limit = 50

# API keys for cloud providers (only needed when a candidate uses one)
[keys]
openai = ""
anthropic = ""

# Ordered model candidates. The assistant tries each in order and the
# first that answers wins.
[[candidates]]
provider = "ollama"
model = "llama3.2:3b"

# [[candidates]]
# provider = "openai"
# model = "gpt-4o-mini"

# [[candidates]]
# provider = "anthropic"
# model = "claude-3-5-haiku-20241022"
`
}
