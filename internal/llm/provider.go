package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
// All providers MUST support a structured (JSON) output mode for reliable response parsing
type Provider interface {
	// Generate performs exactly one upstream call and returns the raw text output.
	// Implementations must not retry.
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model        string
	Temperature  *float64
	SystemPrompt string
	InputArray   []map[string]any
	// Structured output schema. With Strict unset the provider only asks for a JSON object.
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
	Strict      bool
}

// TokenUsage is the provider-neutral token accounting for one call
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string     `json:"-"` // Raw JSON text output, decoded by the caller
	Model     string     `json:"model"`
	Usage     TokenUsage `json:"usage"`
}
