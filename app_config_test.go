package main

import (
	"os"
	"path/filepath"
	"testing"

	"slidesmith/config"
	"slidesmith/layouts"
	"slidesmith/store"
)

// newTestApp builds an App with file-backed stores under a temp directory,
// without going through wails startup.
func newTestApp(t *testing.T) *App {
	t.Helper()
	tmpDir := t.TempDir()

	app := NewApp()
	app.settings = config.Settings{
		DataDir:       tmpDir,
		TempDir:       filepath.Join(tmpDir, "tmp"),
		LayoutsDir:    filepath.Join(tmpDir, "layouts"),
		CanChangeKeys: true,
		StaticPort:    config.DefaultStaticPort,
	}
	app.llmStore = store.New(filepath.Join(tmpDir, "userConfig.json"), nil)
	app.themeStore = store.New(filepath.Join(tmpDir, "theme.json"), nil)
	app.footerStore = store.New(filepath.Join(tmpDir, "footer.json"), nil)
	app.layoutRegistry = layouts.NewRegistry(app.settings.LayoutsDir, nil)
	return app
}

func TestLLMConfig_RoundTrip(t *testing.T) {
	app := newTestApp(t)

	saved := config.LLMConfig{
		Provider:     config.ProviderOpenAI,
		OpenAIAPIKey: "sk-test-123",
	}
	if err := app.SaveLLMConfig(saved); err != nil {
		t.Fatalf("SaveLLMConfig failed: %v", err)
	}

	loaded, err := app.GetLLMConfig()
	if err != nil {
		t.Fatalf("GetLLMConfig failed: %v", err)
	}
	if loaded.Provider != config.ProviderOpenAI {
		t.Errorf("Expected provider %s, got %s", config.ProviderOpenAI, loaded.Provider)
	}
	if loaded.OpenAIAPIKey != "sk-test-123" {
		t.Errorf("Expected key sk-test-123, got %s", loaded.OpenAIAPIKey)
	}
	if !app.HasCompleteLLMConfig() {
		t.Error("Expected complete config after save")
	}
}

func TestLLMConfig_MissingIsZero(t *testing.T) {
	app := newTestApp(t)

	loaded, err := app.GetLLMConfig()
	if err != nil {
		t.Fatalf("GetLLMConfig failed: %v", err)
	}
	if loaded.Provider != "" {
		t.Errorf("Expected zero config, got provider %s", loaded.Provider)
	}
	if app.HasCompleteLLMConfig() {
		t.Error("Expected incomplete config before any save")
	}
}

func TestLLMConfig_SaveBlockedWhenKeysLocked(t *testing.T) {
	app := newTestApp(t)
	app.settings.CanChangeKeys = false

	err := app.SaveLLMConfig(config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk-x"})
	if err == nil {
		t.Fatal("Expected error when credential editing is disabled")
	}
	if app.CanChangeKeys() {
		t.Error("CanChangeKeys should report false")
	}
}

func TestTheme_DefaultsToCatalogDefault(t *testing.T) {
	app := newTestApp(t)

	// One layout group marked default in the catalog.
	groupDir := filepath.Join(app.settings.LayoutsDir, "modern")
	if err := os.MkdirAll(groupDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(groupDir, "title-slide.html"), []byte("<div class=\"slide\"></div>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(groupDir, "settings.json"), []byte(`{"default": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	theme, err := app.GetTheme()
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if theme.Name != "modern" {
		t.Errorf("Expected default theme modern, got %q", theme.Name)
	}
}

func TestTheme_RoundTrip(t *testing.T) {
	app := newTestApp(t)

	saved := config.Theme{
		Name:   "classic",
		Colors: map[string]string{"accent": "#3b82f6"},
	}
	if err := app.SaveTheme(saved); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}

	loaded, err := app.GetTheme()
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if loaded.Name != "classic" {
		t.Errorf("Expected theme classic, got %s", loaded.Name)
	}
	if loaded.Colors["accent"] != "#3b82f6" {
		t.Errorf("Expected accent #3b82f6, got %s", loaded.Colors["accent"])
	}
}

func TestTheme_SaveRequiresName(t *testing.T) {
	app := newTestApp(t)

	if err := app.SaveTheme(config.Theme{}); err == nil {
		t.Error("Expected error for empty theme name")
	}
}

func TestFooterProperties_MergePreservesOtherKeys(t *testing.T) {
	app := newTestApp(t)

	if err := app.SaveFooterProperties(config.FooterProperties{
		"showPageNumber": true,
		"text":           "Confidential",
	}); err != nil {
		t.Fatalf("SaveFooterProperties failed: %v", err)
	}
	if err := app.SaveFooterProperties(config.FooterProperties{
		"text": "Internal",
	}); err != nil {
		t.Fatalf("Second SaveFooterProperties failed: %v", err)
	}

	props, err := app.GetFooterProperties()
	if err != nil {
		t.Fatalf("GetFooterProperties failed: %v", err)
	}
	if props["text"] != "Internal" {
		t.Errorf("Expected text Internal, got %v", props["text"])
	}
	if props["showPageNumber"] != true {
		t.Errorf("Expected showPageNumber preserved, got %v", props["showPageNumber"])
	}
}

func TestTestLLMConnection_IncompleteConfig(t *testing.T) {
	app := newTestApp(t)
	app.connectionTest = NewConnectionTestService(nil)

	result := app.TestLLMConnection(config.LLMConfig{Provider: config.ProviderOpenAI})
	if result.Success {
		t.Error("Expected failure for incomplete config")
	}
	if result.Message == "" {
		t.Error("Expected a diagnostic message")
	}
}
