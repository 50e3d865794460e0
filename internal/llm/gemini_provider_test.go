package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiProvider_Name(t *testing.T) {
	// We can't create a real client without an API key
	// So just test the name method with a nil client
	provider := &GeminiProvider{client: nil}
	assert.Equal(t, "gemini", provider.Name())
}

func TestGeminiProvider_BuildContents(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	tests := []struct {
		name       string
		inputArray []map[string]any
		wantLen    int
	}{
		{
			name: "single user message",
			inputArray: []map[string]any{
				{"role": "user", "content": "test content"},
			},
			wantLen: 1,
		},
		{
			name: "developer role converted to user",
			inputArray: []map[string]any{
				{"role": "developer", "content": "system message"},
			},
			wantLen: 1,
		},
		{
			name: "invalid message skipped",
			inputArray: []map[string]any{
				{"role": "user", "content": "valid"},
				{"role": "user"}, // missing content
			},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents := provider.buildGeminiContents(tt.inputArray)
			assert.Len(t, contents, tt.wantLen)

			for _, content := range contents {
				assert.Equal(t, "user", content.Role)
				assert.NotEmpty(t, content.Parts)
			}
		})
	}
}

func TestGeminiProvider_BuildConfig(t *testing.T) {
	provider := &GeminiProvider{client: nil}
	temperature := 0.6

	config := provider.buildConfig(&GenerationRequest{
		SystemPrompt: "system text",
		Temperature:  &temperature,
		OutputSchema: &OutputSchema{Schema: GetListingOutputSchema(false)},
	})

	require.NotNil(t, config.SystemInstruction)
	assert.Equal(t, "system text", config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.6, *config.Temperature, 1e-6)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)

	config = provider.buildConfig(&GenerationRequest{
		OutputSchema: &OutputSchema{Name: ListingSchemaName},
	})
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	assert.Nil(t, config.ResponseSchema)
	assert.Nil(t, config.Temperature)
	assert.Nil(t, config.SystemInstruction)
}

func TestConvertSchemaToGemini(t *testing.T) {
	schema := convertSchemaToGemini(GetListingOutputSchema(false))

	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"platforms"}, schema.Required)

	platforms := schema.Properties["platforms"]
	require.NotNil(t, platforms)
	assert.ElementsMatch(t, PlatformKeys, platforms.Required)

	ebay := platforms.Properties["ebay"]
	require.NotNil(t, ebay)
	assert.Equal(t, genai.TypeArray, ebay.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, ebay.Properties["tags"].Items.Type)
	assert.Equal(t, genai.TypeNumber, ebay.Properties["pricing"].Properties["minAccept"].Type)
}

func TestGeminiProvider_ProcessResponse(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	_, err := provider.processGeminiResponse(&genai.GenerateContentResponse{}, "gemini-2.5-flash")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	resp, err := provider.processGeminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: `{"platforms":{}}`}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 20,
			TotalTokenCount:      30,
		},
	}, "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Equal(t, `{"platforms":{}}`, resp.RawOutput)
	assert.Equal(t, TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}, resp.Usage)
}

func TestAsUpstreamError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", genai.APIError{Code: 429, Message: "quota exceeded"})
	upstream := asUpstreamError(err)
	require.NotNil(t, upstream)
	assert.Equal(t, 429, upstream.StatusCode)
	assert.Equal(t, "quota exceeded", upstream.Body)

	upstream = asUpstreamError(&genai.APIError{Code: 503, Status: "UNAVAILABLE"})
	require.NotNil(t, upstream)
	assert.Equal(t, 503, upstream.StatusCode)
	assert.Equal(t, "UNAVAILABLE", upstream.Body)

	assert.Nil(t, asUpstreamError(errors.New("dial tcp: connection refused")))
}

func TestNewGeminiProvider_InvalidKey(t *testing.T) {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx, "invalid-key")

	// Client creation does not contact the API, so this normally succeeds
	if err != nil {
		assert.Error(t, err)
	} else {
		assert.NotNil(t, provider)
		assert.Equal(t, "gemini", provider.Name())
	}
}
