package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ulapchat/assistant"
	"ulapchat/broadcast"
	"ulapchat/catalog"
	"ulapchat/chart"
	"ulapchat/config"
	"ulapchat/model"
	"ulapchat/provider"
	"ulapchat/storage"
	"ulapchat/tools"
	"ulapchat/ui"
)

const (
	Version = "v0.1.0"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	products, err := loadCatalog(cfg)
	if err != nil {
		fmt.Printf("Failed to load catalog: %v\n", err)
		os.Exit(1)
	}
	cat := catalog.New(products)

	kv, err := storage.OpenKV(cfg.DatabasePath())
	if err != nil {
		fmt.Printf("Failed to open session database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()
	store := storage.NewSessionStore(kv, cfg.HistoryLimit)

	dispatcher := tools.NewDispatcher()
	tools.RegisterChartTool(dispatcher, chart.NewSynthesizer(cat))

	candidates, err := buildCandidates(cfg)
	if err != nil {
		fmt.Printf("Failed to configure model candidates: %v\n", err)
		os.Exit(1)
	}

	orchestrator := assistant.New(candidates, dispatcher, assistant.SystemContext(cat))

	hub := broadcast.NewHub()

	p := tea.NewProgram(
		ui.NewApp(orchestrator, store, hub, "local"),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running ulapchat: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config) ([]catalog.Product, error) {
	if cfg.CatalogFile == "" {
		return catalog.Seed(), nil
	}
	return catalog.LoadFile(config.ExpandPath(cfg.CatalogFile))
}

// buildCandidates turns the configured fallback list into live
// providers. Instances are shared across candidates of the same
// provider type.
func buildCandidates(cfg *config.Config) ([]assistant.Candidate, error) {
	providers := make(map[provider.ProviderType]model.Provider)

	var candidates []assistant.Candidate
	for _, c := range cfg.Candidates {
		ptype := provider.MapProviderIDToType(c.Provider)

		p, ok := providers[ptype]
		if !ok {
			var err error
			p, err = provider.NewProvider(providerConfig(cfg, ptype, c.Model))
			if err != nil {
				return nil, fmt.Errorf("candidate %s/%s: %w", c.Provider, c.Model, err)
			}
			providers[ptype] = p
		}

		candidates = append(candidates, assistant.Candidate{
			Provider: p,
			Model:    c.Model,
			Name:     fmt.Sprintf("%s/%s", c.Provider, c.Model),
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no model candidates configured")
	}
	return candidates, nil
}

func providerConfig(cfg *config.Config, ptype provider.ProviderType, modelName string) provider.Config {
	pc := provider.Config{Type: ptype, Model: modelName}
	switch ptype {
	case provider.ProviderTypeOllama:
		pc.BaseURL = cfg.OllamaHost
	case provider.ProviderTypeOpenAI:
		pc.APIKey = cfg.OpenAIKey
	case provider.ProviderTypeAnthropic:
		pc.APIKey = cfg.AnthropicKey
	}
	return pc
}
