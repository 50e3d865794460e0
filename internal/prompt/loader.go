package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/relist-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the fixed system instruction
func (l *Loader) GetSystemPrompt() string {
	return strings.TrimSpace(string(embedded.SystemPromptTxt))
}

// GetListingPreamble loads the opening role/format instruction of the user prompt
func (l *Loader) GetListingPreamble() string {
	return strings.TrimSpace(string(embedded.ListingPreambleTxt))
}

// GetListingRequirements loads the versioned formatting requirements
func (l *Loader) GetListingRequirements() string {
	return strings.TrimSpace(string(embedded.ListingRequirementsTxt))
}

// GetOutputShape loads the output JSON shape contract
func (l *Loader) GetOutputShape() string {
	return strings.TrimSpace(string(embedded.OutputShapeTxt))
}
