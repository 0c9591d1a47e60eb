package llm

import (
	"fmt"

	"github.com/sant0-9/prompto/internal/config"
)

// Settings identifies a provider and the credentials to reach it
type Settings struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// SettingsFromConfig returns the manual-provider settings of cfg
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	}
}

// NewProvider looks up s.Provider in the dispatch table and builds it.
// Unknown ids wrap ErrUnknownProvider; a required but empty key wraps
// ErrMissingAPIKey.
func NewProvider(s Settings, opts ...Option) (Provider, error) {
	info := config.GetProvider(s.Provider)
	if info == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
	if info.NeedsAPIKey && s.APIKey == "" {
		return nil, fmt.Errorf("%s requires an API key: %w", info.Name, ErrMissingAPIKey)
	}

	model := s.Model
	if model == "" {
		model = info.DefaultModel
	}
	if s.BaseURL != "" && s.Provider != "custom" {
		opts = append(opts, WithBaseURL(s.BaseURL))
	}

	switch s.Provider {
	case "ollama":
		return NewOllamaProvider(s.BaseURL, model, opts...), nil
	case "groq":
		return NewGroqProvider(s.APIKey, model, opts...), nil
	case "openai":
		return NewOpenAIProvider(s.APIKey, model, opts...), nil
	case "anthropic":
		return NewAnthropicProvider(s.APIKey, model, opts...), nil
	case "gemini":
		return NewGeminiProvider(s.APIKey, model, opts...), nil
	case "openrouter":
		return NewOpenRouterProvider(s.APIKey, model, opts...), nil
	case "custom":
		if s.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(s.BaseURL, s.APIKey, model, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
}

// NewLocalProvider creates the zero-configuration local backend
func NewLocalProvider(local *config.LocalConfig, opts ...Option) (*OllamaProvider, error) {
	if local == nil || !local.Enabled {
		return nil, nil
	}

	switch local.Provider {
	case "", "ollama":
		return NewOllamaProvider(local.Host, local.Model, opts...), nil
	default:
		return nil, fmt.Errorf("%w: local provider %q", ErrUnknownProvider, local.Provider)
	}
}
