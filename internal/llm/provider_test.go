package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &GenerationResponse{}, nil
}

func TestProviderInterface(t *testing.T) {
	var p Provider = &MockProvider{name: "mock"}
	assert.Equal(t, "mock", p.Name())
}

func TestMockProvider_Generate(t *testing.T) {
	mock := &MockProvider{
		name: "mock",
		generateFunc: func(_ context.Context, request *GenerationRequest) (*GenerationResponse, error) {
			return &GenerationResponse{RawOutput: `{"platforms":{}}`, Model: request.Model}, nil
		},
	}

	resp, err := mock.Generate(context.Background(), &GenerationRequest{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", resp.Model)
	assert.Equal(t, `{"platforms":{}}`, resp.RawOutput)
}

func TestProviderFactory_GetProvider(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		settings     ProviderSettings
		model        string
		providerName string
		wantName     string
		wantEnvVar   string
		wantErr      bool
	}{
		{
			name:     "gpt model uses openai",
			settings: ProviderSettings{OpenAIAPIKey: "sk-test"},
			model:    "gpt-4o",
			wantName: "openai",
		},
		{
			name:     "unknown model defaults to openai",
			settings: ProviderSettings{OpenAIAPIKey: "sk-test"},
			model:    "some-other-model",
			wantName: "openai",
		},
		{
			name:         "explicit openai provider",
			settings:     ProviderSettings{OpenAIAPIKey: "sk-test"},
			providerName: "OpenAI",
			wantName:     "openai",
		},
		{
			name:       "missing openai key",
			settings:   ProviderSettings{},
			model:      "gpt-4o",
			wantErr:    true,
			wantEnvVar: "OPENAI_API_KEY",
		},
		{
			name:       "missing gemini key",
			settings:   ProviderSettings{OpenAIAPIKey: "sk-test"},
			model:      "gemini-2.5-flash",
			wantErr:    true,
			wantEnvVar: "GEMINI_API_KEY",
		},
		{
			name:         "unknown provider",
			settings:     ProviderSettings{OpenAIAPIKey: "sk-test"},
			providerName: "anthropic",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := NewProviderFactory(tt.settings)
			provider, err := factory.GetProvider(ctx, tt.model, tt.providerName)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, provider)

				var missing *MissingCredentialError
				if tt.wantEnvVar != "" {
					require.True(t, errors.As(err, &missing))
					assert.Equal(t, tt.wantEnvVar, missing.EnvVar)
				} else {
					assert.False(t, errors.As(err, &missing))
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, provider.Name())
		})
	}
}

func TestProviderFactory_OpenAIBaseURL(t *testing.T) {
	factory := NewProviderFactory(ProviderSettings{
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: "http://localhost:9999/v1",
	})

	provider, err := factory.GetProvider(context.Background(), "gpt-4o", "")
	require.NoError(t, err)

	openaiProvider, ok := provider.(*OpenAIProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:9999/v1", openaiProvider.baseURL)

	factory = NewProviderFactory(ProviderSettings{OpenAIAPIKey: "sk-test"})
	provider, err = factory.GetProvider(context.Background(), "gpt-4o", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIBaseURL, provider.(*OpenAIProvider).baseURL)
}

func TestErrorMessages(t *testing.T) {
	upstream := &UpstreamError{Provider: "openai", StatusCode: 429, Body: "rate limited"}
	assert.Equal(t, "openai API error 429: rate limited", upstream.Error())

	missing := &MissingCredentialError{Provider: "openai", EnvVar: "OPENAI_API_KEY"}
	assert.Contains(t, missing.Error(), "OPENAI_API_KEY")
}
