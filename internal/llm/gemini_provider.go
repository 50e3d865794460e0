package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/relist-api/internal/logger"
	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	mimeTypeJSON       = "application/json"
	geminiUserRole     = "user"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate implements non-streaming generation using Gemini's API
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents := p.buildGeminiContents(request.InputArray)
	config := p.buildConfig(request)

	span := transaction.StartChild("gemini.api_call")
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		if upstream := asUpstreamError(err); upstream != nil {
			return nil, upstream
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	response, err := p.processGeminiResponse(result, request.Model)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	logger.Debug("gemini request completed", logger.Fields{
		"model":         request.Model,
		"duration_ms":   time.Since(startTime).Milliseconds(),
		"output_length": len(response.RawOutput),
	})

	return response, nil
}

// buildConfig sets the system instruction, sampling temperature and JSON output mode
func (p *GeminiProvider) buildConfig(request *GenerationRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if request.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		}
	}

	if request.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*request.Temperature))
	}

	if request.OutputSchema != nil {
		config.ResponseMIMEType = mimeTypeJSON
		if request.OutputSchema.Schema != nil {
			config.ResponseSchema = convertSchemaToGemini(request.OutputSchema.Schema)
		}
	}

	return config
}

// buildGeminiContents converts our input array to Gemini Content format
func (p *GeminiProvider) buildGeminiContents(inputArray []map[string]any) []*genai.Content {
	var contents []*genai.Content

	for _, item := range inputArray {
		_, hasRole := item["role"].(string)
		content, hasContent := item["content"].(string)

		if !hasRole || !hasContent {
			logger.Warn("skipping invalid input item", logger.Fields{"item": fmt.Sprintf("%v", item)})
			continue
		}

		// Gemini only knows "user" and "model"; system and developer text goes as user
		contents = append(contents, &genai.Content{
			Role:  geminiUserRole,
			Parts: []*genai.Part{{Text: content}},
		})
	}

	return contents
}

// convertSchemaToGemini maps a JSON schema (as produced by GetListingOutputSchema) to genai.Schema
func convertSchemaToGemini(schema map[string]any) *genai.Schema {
	out := &genai.Schema{}

	switch schema["type"] {
	case "object":
		out.Type = genai.TypeObject
	case "array":
		out.Type = genai.TypeArray
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if child, ok := raw.(map[string]any); ok {
				out.Properties[name] = convertSchemaToGemini(child)
			}
		}
	}

	if items, ok := schema["items"].(map[string]any); ok {
		out.Items = convertSchemaToGemini(items)
	}

	if required, ok := schema["required"].([]string); ok {
		out.Required = required
	}

	return out
}

// processGeminiResponse converts Gemini response to our GenerationResponse
func (p *GeminiProvider) processGeminiResponse(result *genai.GenerateContentResponse, model string) (*GenerationResponse, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates in Gemini response", ErrMalformedResponse)
	}

	textOutput := result.Text()
	if textOutput == "" {
		return nil, ErrEmptyOutput
	}

	response := &GenerationResponse{
		RawOutput: textOutput,
		Model:     model,
	}

	if result.UsageMetadata != nil {
		response.Usage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}

	return response, nil
}

// asUpstreamError maps a genai API error onto UpstreamError so callers see one shape.
// genai does not expose the raw response body, so Message is the closest text to it;
// Status fills in when Message is empty.
func asUpstreamError(err error) *UpstreamError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return newGeminiUpstreamError(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return newGeminiUpstreamError(*apiErrPtr)
	}
	return nil
}

func newGeminiUpstreamError(apiErr genai.APIError) *UpstreamError {
	body := apiErr.Message
	if body == "" {
		body = apiErr.Status
	}
	return &UpstreamError{Provider: providerNameGemini, StatusCode: apiErr.Code, Body: body}
}
