package prompt

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

const (
	// NotesPlaceholder stands in for empty item notes
	NotesPlaceholder = "(none provided)"
	// ImagesPlaceholder stands in for an empty image URL list
	ImagesPlaceholder = "(none)"

	imageURLSeparator = ", "
)

const inputTemplate = `
	INPUT:
	- Item notes: %s
	- Image URLs (optional): %s
`

// Builder builds the instruction payload for listing generation
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// SystemPrompt returns the fixed system instruction sent with every request
func (b *Builder) SystemPrompt() string {
	return b.loader.GetSystemPrompt()
}

// BuildUserPrompt encodes the item notes and image references together with
// the formatting requirements and the output shape. The output depends only on
// its arguments.
func (b *Builder) BuildUserPrompt(itemNotes string, imageURLs []string) string {
	sections := []string{
		b.loader.GetListingPreamble(),
		FormatInput(itemNotes, imageURLs),
		b.loader.GetListingRequirements(),
		b.loader.GetOutputShape(),
	}
	return strings.Join(sections, "\n\n")
}

// FormatInput renders the INPUT block, substituting placeholders for empty values
func FormatInput(itemNotes string, imageURLs []string) string {
	notes := itemNotes
	if notes == "" {
		notes = NotesPlaceholder
	}

	images := ImagesPlaceholder
	if len(imageURLs) > 0 {
		images = strings.Join(imageURLs, imageURLSeparator)
	}

	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(inputTemplate)), notes, images)
}
