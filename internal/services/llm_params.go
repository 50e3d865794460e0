package services

import (
	"github.com/Conceptual-Machines/relist-api/internal/config"
	"github.com/Conceptual-Machines/relist-api/internal/llm"
)

// LLMParameters contains the fixed sampling settings for every generation call
type LLMParameters struct {
	Provider     string
	Model        string
	Temperature  float64
	OutputSchema *llm.OutputSchema
}

// GetLLMParameters derives the generation parameters from configuration.
// The schema is always attached: Gemini uses it as its response schema,
// OpenAI only receives it in strict json_schema mode.
func GetLLMParameters(cfg *config.Config) LLMParameters {
	model := cfg.GenerationModel
	if model == "" {
		model = cfg.DefaultModel()
	}

	strict := cfg.UseJSONSchema()

	return LLMParameters{
		Provider:    cfg.GenerationProvider,
		Model:       model,
		Temperature: cfg.GenerationTemperature,
		OutputSchema: &llm.OutputSchema{
			Name:        llm.ListingSchemaName,
			Description: "Listings for Depop, eBay, Poshmark and Mercari",
			Schema:      llm.GetListingOutputSchema(strict),
			Strict:      strict,
		},
	}
}

// BuildRequest assembles the provider request for one generation
func (p LLMParameters) BuildRequest(systemPrompt, userPrompt string) *llm.GenerationRequest {
	temperature := p.Temperature
	return &llm.GenerationRequest{
		Model:        p.Model,
		Temperature:  &temperature,
		SystemPrompt: systemPrompt,
		InputArray: []map[string]any{
			{"role": "user", "content": userPrompt},
		},
		OutputSchema: p.OutputSchema,
	}
}
