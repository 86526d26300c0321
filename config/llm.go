package config

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderOllama    = "ollama"
	ProviderCustom    = "custom"
)

// LLMConfig is the provider-agnostic credential record. One key field per
// provider; only the fields of the selected provider matter for validity.
type LLMConfig struct {
	Provider        string `json:"provider"`
	OpenAIAPIKey    string `json:"openaiApiKey,omitempty"`
	AnthropicAPIKey string `json:"anthropicApiKey,omitempty"`
	GoogleAPIKey    string `json:"googleApiKey,omitempty"`
	OllamaURL       string `json:"ollamaUrl,omitempty"`
	OllamaModel     string `json:"ollamaModel,omitempty"`
	CustomAPIKey    string `json:"customApiKey,omitempty"`
	CustomBaseURL   string `json:"customBaseUrl,omitempty"`
	CustomModel     string `json:"customModel,omitempty"`
}

// APIKey returns the key field for the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderGoogle:
		return c.GoogleAPIKey
	case ProviderCustom:
		return c.CustomAPIKey
	default:
		return ""
	}
}

// IsComplete reports whether every field the selected provider needs is set.
// Fields belonging to other providers never block validity.
func (c LLMConfig) IsComplete() bool {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		return c.APIKey() != ""
	case ProviderOllama:
		return c.OllamaURL != "" && c.OllamaModel != ""
	case ProviderCustom:
		return c.CustomBaseURL != "" && c.CustomModel != ""
	default:
		return false
	}
}

// Theme selects the layout template family and color scheme applied at
// render time.
type Theme struct {
	Name   string            `json:"name"`             // layout group id
	Colors map[string]string `json:"colors,omitempty"` // css variable overrides
}

// FooterProperties is the open-shape footer preference document.
type FooterProperties map[string]interface{}
