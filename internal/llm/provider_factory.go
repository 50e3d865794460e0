package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderSettings holds the credentials and endpoints the factory needs
type ProviderSettings struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
}

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	settings ProviderSettings
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(settings ProviderSettings) *ProviderFactory {
	return &ProviderFactory{settings: settings}
}

// GetProvider returns the appropriate provider for the given model/provider name.
// A missing API key yields *MissingCredentialError.
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	// If provider is explicitly specified, use that
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}

	// Otherwise, infer from model name
	return f.getProviderByModel(ctx, model)
}

// getProviderByName creates a provider by explicit name
func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		return f.openAI()
	case providerNameGemini:
		return f.gemini(ctx)
	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", providerName)
	}
}

// getProviderByModel infers provider from model name
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	if strings.HasPrefix(strings.ToLower(model), "gemini-") {
		return f.gemini(ctx)
	}

	// Default to OpenAI for gpt-* and unknown models
	return f.openAI()
}

func (f *ProviderFactory) openAI() (Provider, error) {
	if f.settings.OpenAIAPIKey == "" {
		return nil, &MissingCredentialError{Provider: providerNameOpenAI, EnvVar: "OPENAI_API_KEY"}
	}
	return NewOpenAIProvider(f.settings.OpenAIAPIKey, WithBaseURL(f.settings.OpenAIBaseURL)), nil
}

func (f *ProviderFactory) gemini(ctx context.Context) (Provider, error) {
	if f.settings.GeminiAPIKey == "" {
		return nil, &MissingCredentialError{Provider: providerNameGemini, EnvVar: "GEMINI_API_KEY"}
	}
	return NewGeminiProvider(ctx, f.settings.GeminiAPIKey)
}
