package llm

import (
	"context"
	"fmt"
)

// Options selects and configures a concrete provider.
type Options struct {
	Provider string // "mock", "openai", or "gemini"
	APIKey   string
	BaseURL  string // openai-compatible endpoint, e.g. https://api.openai.com
	Model    string
}

// New builds a Generator for the configured provider. Unknown providers are
// an error rather than a silent mock fallback so misconfiguration surfaces
// at startup.
func New(ctx context.Context, opts Options) (Generator, error) {
	switch opts.Provider {
	case "", "mock":
		return NewMockClient(), nil
	case "openai":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com"
		}
		return NewOpenAIClient(baseURL, opts.APIKey, opts.Model), nil
	case "gemini":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return NewGeminiClient(ctx, opts.APIKey, opts.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
