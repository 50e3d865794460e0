package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/relist-api/internal/logger"
	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

const (
	// Role constants
	userRole      = "user"
	developerRole = "developer"
	systemRole    = "system"

	// Provider name
	providerNameOpenAI = "openai"

	// DefaultOpenAIBaseURL is the public OpenAI API root
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	chatCompletionsPath  = "/chat/completions"

	maxPreviewChars = 200
)

// OpenAIProvider implements the Provider interface using OpenAI's Chat Completions API.
// Request and response bodies use the openai-go types; transport is a resty client
// so that the base URL can point at any compatible endpoint.
type OpenAIProvider struct {
	client  *resty.Client
	apiKey  string
	baseURL string
}

// OpenAIOption configures an OpenAIProvider
type OpenAIOption func(*OpenAIProvider)

// WithBaseURL overrides the API root (e.g. a proxy or a test server)
func WithBaseURL(baseURL string) OpenAIOption {
	return func(p *OpenAIProvider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, opts ...OpenAIOption) *OpenAIProvider {
	p := &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: DefaultOpenAIBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = resty.New().
		SetDebug(false).
		SetBaseURL(p.baseURL).
		SetHeader("Content-Type", "application/json")

	return p
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate performs a single chat completion call. Non-2xx responses are
// returned as *UpstreamError carrying the response body unchanged.
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)
	payload, err := json.Marshal(params)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("failed to encode openai request: %w", err)
	}

	logger.Debug("openai request started", logger.Fields{
		"model":        request.Model,
		"payload_size": len(payload),
	})

	span := transaction.StartChild("openai.api_call")
	res, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(payload).
		Post(chatCompletionsPath)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if !res.IsSuccess() {
		transaction.SetTag("success", "false")
		logger.Warn("openai returned non-success status", logger.Fields{
			"model":       request.Model,
			"status_code": res.StatusCode(),
			"body":        truncate(string(res.Body()), maxPreviewChars),
		})
		return nil, &UpstreamError{
			Provider:   providerNameOpenAI,
			StatusCode: res.StatusCode(),
			Body:       string(res.Body()),
		}
	}

	response, err := p.processResponse(res.Body(), request.Model)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	logger.Debug("openai request completed", logger.Fields{
		"model":         response.Model,
		"duration_ms":   time.Since(startTime).Milliseconds(),
		"output_length": len(response.RawOutput),
	})

	return response, nil
}

// buildRequestParams converts a GenerationRequest into chat completion params
func (p *OpenAIProvider) buildRequestParams(request *GenerationRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(request.InputArray)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	messages = append(messages, buildMessages(request.InputArray)...)

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(request.Model),
		Messages: messages,
	}

	if request.Temperature != nil {
		params.Temperature = openai.Float(*request.Temperature)
	}

	if request.OutputSchema != nil {
		params.ResponseFormat = buildResponseFormat(request.OutputSchema)
	}

	return params
}

// buildResponseFormat selects json_object mode, or strict json_schema when requested
func buildResponseFormat(schema *OutputSchema) openai.ChatCompletionNewParamsResponseFormatUnion {
	if !schema.Strict || schema.Schema == nil {
		return openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	jsonSchema := shared.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   schema.Name,
		Schema: schema.Schema,
		Strict: openai.Bool(true),
	}
	if schema.Description != "" {
		jsonSchema.Description = openai.String(schema.Description)
	}

	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{JSONSchema: jsonSchema},
	}
}

// buildMessages converts role/content maps to chat messages, skipping invalid items
func buildMessages(inputArray []map[string]any) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(inputArray))
	for _, item := range inputArray {
		role, hasRole := item["role"].(string)
		content, hasContent := item["content"].(string)
		if !hasRole || !hasContent {
			logger.Warn("skipping invalid input item", logger.Fields{"item": fmt.Sprintf("%v", item)})
			continue
		}

		switch role {
		case systemRole:
			messages = append(messages, openai.SystemMessage(content))
		case developerRole:
			messages = append(messages, openai.DeveloperMessage(content))
		default:
			messages = append(messages, openai.UserMessage(content))
		}
	}
	return messages
}

// processResponse decodes the chat completion envelope and extracts the first choice
func (p *OpenAIProvider) processResponse(body []byte, requestedModel string) (*GenerationResponse, error) {
	var completion openai.ChatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		logger.Warn("failed to decode openai response", logger.Fields{
			"error":   err.Error(),
			"preview": truncate(string(body), maxPreviewChars),
		})
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, ErrEmptyOutput
	}

	model := completion.Model
	if model == "" {
		model = requestedModel
	}

	return &GenerationResponse{
		RawOutput: completion.Choices[0].Message.Content,
		Model:     model,
		Usage: TokenUsage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
			TotalTokens:  completion.Usage.TotalTokens,
		},
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
