package main

import (
	"encoding/json"
	"fmt"

	"slidesmith/config"
)

// llmConfigKey is the document key the credential record lives under.
const llmConfigKey = "llmConfig"

// CanChangeKeys reports whether the deployment allows credential editing.
func (a *App) CanChangeKeys() bool {
	return a.settings.CanChangeKeys
}

// GetLLMConfig returns the stored LLM credential record. A missing or
// never-saved record yields the zero config, not an error.
func (a *App) GetLLMConfig() (config.LLMConfig, error) {
	if a.llmStore == nil {
		return config.LLMConfig{}, fmt.Errorf("config store not initialized")
	}

	raw := a.llmStore.Get(llmConfigKey, nil)
	if raw == nil {
		return config.LLMConfig{}, nil
	}

	// Stored as a generic JSON object; remarshal into the typed record.
	data, err := json.Marshal(raw)
	if err != nil {
		return config.LLMConfig{}, WrapError("config", "get-llm", err)
	}
	var cfg config.LLMConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config.LLMConfig{}, WrapError("config", "get-llm", err)
	}
	return cfg, nil
}

// SaveLLMConfig persists the credential record. Refused when the
// deployment locks credential editing.
func (a *App) SaveLLMConfig(cfg config.LLMConfig) error {
	if !a.settings.CanChangeKeys {
		return fmt.Errorf("credential editing is disabled in this deployment")
	}
	if a.llmStore == nil {
		return fmt.Errorf("config store not initialized")
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return WrapError("config", "save-llm", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return WrapError("config", "save-llm", err)
	}
	if err := a.llmStore.Set(llmConfigKey, doc); err != nil {
		return WrapError("config", "save-llm", err)
	}
	a.Log("[CONFIG] LLM configuration saved for provider: " + cfg.Provider)
	return nil
}

// HasCompleteLLMConfig reports whether saved credentials cover everything
// the selected provider needs.
func (a *App) HasCompleteLLMConfig() bool {
	cfg, err := a.GetLLMConfig()
	if err != nil {
		return false
	}
	return cfg.IsComplete()
}

// TestLLMConnection probes the given credentials against their provider.
func (a *App) TestLLMConnection(cfg config.LLMConfig) ConnectionResult {
	if a.connectionTest == nil {
		return ConnectionResult{Success: false, Message: "connection test service not initialized"}
	}
	return a.connectionTest.TestLLMConnection(cfg)
}

// GetTheme returns the stored theme, falling back to the default layout
// group when nothing was saved yet.
func (a *App) GetTheme() (config.Theme, error) {
	if a.themeStore == nil {
		return config.Theme{}, fmt.Errorf("theme store not initialized")
	}

	theme := config.Theme{
		Name: a.themeStore.GetString("name", ""),
	}
	if raw, ok := a.themeStore.Get("colors", nil).(map[string]interface{}); ok {
		theme.Colors = make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				theme.Colors[k] = s
			}
		}
	}

	if theme.Name == "" && a.layoutRegistry != nil {
		if group, err := a.layoutRegistry.DefaultGroup(); err == nil {
			theme.Name = group.ID
		}
	}
	return theme, nil
}

// SaveTheme persists the theme selection, merging over previous values.
func (a *App) SaveTheme(theme config.Theme) error {
	if a.themeStore == nil {
		return fmt.Errorf("theme store not initialized")
	}
	if err := ValidateRequired("name", theme.Name); err != nil {
		return err
	}

	colors := make(map[string]interface{}, len(theme.Colors))
	for k, v := range theme.Colors {
		colors[k] = v
	}
	return a.themeStore.SetAll(map[string]interface{}{
		"name":   theme.Name,
		"colors": colors,
	})
}

// GetFooterProperties returns the stored footer preference document.
func (a *App) GetFooterProperties() (config.FooterProperties, error) {
	if a.footerStore == nil {
		return nil, fmt.Errorf("footer store not initialized")
	}
	return config.FooterProperties(a.footerStore.Snapshot()), nil
}

// SaveFooterProperties merges the given properties into the stored
// document. Keys absent from the argument keep their previous values.
func (a *App) SaveFooterProperties(props config.FooterProperties) error {
	if a.footerStore == nil {
		return fmt.Errorf("footer store not initialized")
	}
	return a.footerStore.SetAll(map[string]interface{}(props))
}
