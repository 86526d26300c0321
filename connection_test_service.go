package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"slidesmith/config"
)

// ConnectionResult is returned to the frontend after a credential probe.
type ConnectionResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	LatencyMs int64  `json:"latencyMs"`
}

// ConnectionTestService probes saved LLM credentials. It only verifies that
// the provider endpoint accepts the key; no generation output is kept.
type ConnectionTestService struct {
	ctx    context.Context
	logger func(string)
}

// NewConnectionTestService creates a new ConnectionTestService instance
func NewConnectionTestService(logger func(string)) *ConnectionTestService {
	return &ConnectionTestService{logger: logger}
}

// Name returns the service name
func (s *ConnectionTestService) Name() string {
	return "connectionTest"
}

// Initialize stores the application context
func (s *ConnectionTestService) Initialize(ctx context.Context) error {
	s.ctx = ctx
	s.log("ConnectionTestService initialized")
	return nil
}

// Shutdown closes the service
func (s *ConnectionTestService) Shutdown() error {
	return nil
}

func (s *ConnectionTestService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

const probePrompt = "Connection check. Reply with the single word: ok"

// TestLLMConnection verifies the given credentials against the selected
// provider. OpenAI-compatible providers get a one-message chat probe;
// Anthropic and Google get an authenticated model-list request.
func (s *ConnectionTestService) TestLLMConnection(cfg config.LLMConfig) ConnectionResult {
	if !cfg.IsComplete() {
		return ConnectionResult{
			Success: false,
			Message: fmt.Sprintf("incomplete configuration for provider %q", cfg.Provider),
		}
	}

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	var err error
	switch cfg.Provider {
	case config.ProviderOpenAI:
		err = s.probeChat(ctx, cfg.OpenAIAPIKey, "", "gpt-4o-mini")
	case config.ProviderCustom:
		err = s.probeChat(ctx, cfg.CustomAPIKey, cfg.CustomBaseURL, cfg.CustomModel)
	case config.ProviderOllama:
		err = s.probeChat(ctx, "ollama", strings.TrimSuffix(cfg.OllamaURL, "/")+"/v1", cfg.OllamaModel)
	case config.ProviderAnthropic:
		err = s.probeEndpoint(ctx, "https://api.anthropic.com/v1/models", map[string]string{
			"x-api-key":         cfg.AnthropicAPIKey,
			"anthropic-version": "2023-06-01",
		})
	case config.ProviderGoogle:
		err = s.probeEndpoint(ctx,
			"https://generativelanguage.googleapis.com/v1beta/models?key="+cfg.GoogleAPIKey, nil)
	default:
		return ConnectionResult{
			Success: false,
			Message: fmt.Sprintf("unknown provider %q", cfg.Provider),
		}
	}

	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		s.log(fmt.Sprintf("[TEST-LLM] Probe failed for %s: %v", cfg.Provider, err))
		return ConnectionResult{Success: false, Message: err.Error(), LatencyMs: elapsed}
	}

	s.log(fmt.Sprintf("[TEST-LLM] Probe succeeded for %s in %dms", cfg.Provider, elapsed))
	return ConnectionResult{Success: true, Message: "Connection successful!", LatencyMs: elapsed}
}

// probeChat sends a single short message through an OpenAI-compatible chat
// endpoint and discards the answer.
func (s *ConnectionTestService) probeChat(ctx context.Context, apiKey, baseURL, model string) error {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}

	_, err = chatModel.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: probePrompt},
	})
	return err
}

// probeEndpoint issues an authenticated GET and interprets the status code.
func (s *ConnectionTestService) probeEndpoint(ctx context.Context, url string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("credentials rejected (HTTP %d)", resp.StatusCode)
	default:
		return fmt.Errorf("unexpected response (HTTP %d)", resp.StatusCode)
	}
}
