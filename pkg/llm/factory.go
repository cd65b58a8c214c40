package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// credential environment variables per provider, in lookup order
var credentialEnv = map[Provider][]string{
	ProviderGemini: {"GEMINI_API_KEY", "API_KEY"},
	ProviderClaude: {"ANTHROPIC_API_KEY"},
	ProviderOpenAI: {"OPENAI_API_KEY"},
}

// Config selects and configures one provider.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint; empty means the public API.
	BaseURL string
}

// ParseProvider normalizes a provider name. Empty selects Gemini.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderClaude, ProviderOpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s (supported: gemini, claude, openai)", s)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func GetAvailableProviders() []Provider {
	return []Provider{ProviderGemini, ProviderClaude, ProviderOpenAI}
}

// APIKeyFromEnv returns the first non-empty credential variable for p.
func APIKeyFromEnv(p Provider) string {
	for _, name := range credentialEnv[p] {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// New creates an LLM for cfg. A missing API key is reported as
// ErrMissingCredential before any network traffic happens.
func New(ctx context.Context, cfg Config) (LLM, error) {
	provider, err := ParseProvider(string(cfg.Provider))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingCredential, strings.Join(credentialEnv[provider], " or "))
	}

	switch provider {
	case ProviderClaude:
		model := cfg.Model
		if model == "" {
			model = DefaultClaudeModel
		}
		c := NewClaudeWithModel(cfg.APIKey, model)
		if cfg.BaseURL != "" {
			c.url = cfg.BaseURL
		}
		return c, nil

	case ProviderOpenAI:
		model := cfg.Model
		if model == "" {
			model = DefaultOpenAIModel
		}
		o := NewOpenAIWithModel(cfg.APIKey, model)
		if cfg.BaseURL != "" {
			o.url = cfg.BaseURL
		}
		return o, nil

	default:
		return NewGeminiWithModel(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	}
}

// CreateFromEnv creates an LLM instance from environment variables.
// Explicit overrides win over LLM_PROVIDER and LLM_MODEL.
func CreateFromEnv(ctx context.Context, providerOverride, modelOverride string) (LLM, error) {
	name := providerOverride
	if name == "" {
		name = os.Getenv("LLM_PROVIDER")
	}
	provider, err := ParseProvider(name)
	if err != nil {
		return nil, err
	}

	model := modelOverride
	if model == "" {
		model = os.Getenv("LLM_MODEL")
	}

	return New(ctx, Config{
		Provider: provider,
		Model:    model,
		APIKey:   APIKeyFromEnv(provider),
	})
}
