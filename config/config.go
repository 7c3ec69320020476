// Package config loads layered configuration: a small system file under
// ~/.config/ulapchat pointing at the data directory, a user config.toml
// inside the data directory, and ULAP_* environment overrides on top.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

// CandidateConfig is one entry in the ordered fallback list.
type CandidateConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// KeysConfig holds API keys for cloud providers.
type KeysConfig struct {
	OpenAI    string `toml:"openai,omitempty"`
	Anthropic string `toml:"anthropic,omitempty"`
}

type UserConfig struct {
	Ollama       OllamaConfig      `toml:"ollama"`
	Keys         KeysConfig        `toml:"keys,omitempty"`
	Candidates   []CandidateConfig `toml:"candidates,omitempty"`
	CatalogFile  string            `toml:"catalog_file,omitempty"`
	HistoryLimit int               `toml:"history_limit,omitempty"`
}

type Config struct {
	DataDirectory string
	OllamaHost    string
	DefaultModel  string
	OpenAIKey     string
	AnthropicKey  string
	Candidates    []CandidateConfig
	CatalogFile   string
	HistoryLimit  int
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// DatabasePath is where session state persists.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir(), "sessions.db")
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("ULAP_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if model := os.Getenv("ULAP_OLLAMA_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if dataDir := os.Getenv("ULAP_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if key := os.Getenv("ULAP_OPENAI_API_KEY"); key != "" {
		c.OpenAIKey = key
	}
	if key := os.Getenv("ULAP_ANTHROPIC_API_KEY"); key != "" {
		c.AnthropicKey = key
	}
	if catalog := os.Getenv("ULAP_CATALOG_FILE"); catalog != "" {
		c.CatalogFile = catalog
	}
}

func CheckDebug() bool {
	debug := os.Getenv("ULAP_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log can contain prompt text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (ULAP_DEBUG=%s) ===", os.Getenv("ULAP_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	c.OllamaHost = userCfg.Ollama.Host
	c.DefaultModel = userCfg.Ollama.DefaultModel
	c.OpenAIKey = userCfg.Keys.OpenAI
	c.AnthropicKey = userCfg.Keys.Anthropic
	c.CatalogFile = userCfg.CatalogFile
	if len(userCfg.Candidates) > 0 {
		c.Candidates = userCfg.Candidates
	}
	if userCfg.HistoryLimit > 0 {
		c.HistoryLimit = userCfg.HistoryLimit
	}
}

func Load() (*Config, error) {
	defaults := DefaultUserConfig()
	cfg := &Config{
		DataDirectory: DefaultSystemConfig().DataDirectory,
		OllamaHost:    defaults.Ollama.Host,
		DefaultModel:  defaults.Ollama.DefaultModel,
		Candidates:    defaults.Candidates,
		HistoryLimit:  defaults.HistoryLimit,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	if dataDir := os.Getenv("ULAP_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	// A candidate without an explicit model falls back to the default
	// Ollama model.
	for i := range cfg.Candidates {
		if cfg.Candidates[i].Model == "" {
			cfg.Candidates[i].Model = cfg.DefaultModel
		}
	}

	return cfg, nil
}
