package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/relist-api/internal/llm"
	"github.com/Conceptual-Machines/relist-api/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

const maxReportedSchemaErrors = 5

// ListingValidator turns raw model text into a GenerationResult or rejects it
type ListingValidator struct {
	schema *gojsonschema.Schema
}

// NewListingValidator compiles the listing output schema
func NewListingValidator() (*ListingValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(llm.GetListingOutputSchema(false)))
	if err != nil {
		return nil, fmt.Errorf("failed to compile listing schema: %w", err)
	}
	return &ListingValidator{schema: schema}, nil
}

// Decode validates raw against the listing schema and decodes it.
// Every failure is an UpstreamFormatError; no partial result is returned.
func (v *ListingValidator) Decode(raw string) (*models.GenerationResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, newRelayError(UpstreamFormatError, "Model returned empty output", llm.ErrEmptyOutput)
	}

	if !json.Valid([]byte(raw)) {
		return nil, newRelayError(UpstreamFormatError, "Model returned invalid JSON", nil)
	}

	result, err := v.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, newRelayError(UpstreamFormatError, "Model returned invalid JSON", err)
	}

	if !result.Valid() {
		errs := make([]string, 0, maxReportedSchemaErrors)
		for i, desc := range result.Errors() {
			if i == maxReportedSchemaErrors {
				break
			}
			errs = append(errs, desc.String())
		}
		return nil, newRelayError(UpstreamFormatError,
			"Model output did not match the listing format: "+strings.Join(errs, "; "), nil)
	}

	var listings models.GenerationResult
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		return nil, newRelayError(UpstreamFormatError, "Model returned invalid JSON", err)
	}

	if err := listings.Validate(); err != nil {
		return nil, newRelayError(UpstreamFormatError,
			"Model output did not match the listing format: "+err.Error(), err)
	}

	return &listings, nil
}
