package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInput(t *testing.T) {
	tests := []struct {
		name      string
		notes     string
		imageURLs []string
		expected  string
	}{
		{
			name:      "notes without images",
			notes:     "Vintage Levi's 501 jeans, size 32, small stain on knee",
			imageURLs: []string{},
			expected: "INPUT:\n" +
				"- Item notes: Vintage Levi's 501 jeans, size 32, small stain on knee\n" +
				"- Image URLs (optional): (none)",
		},
		{
			name:      "images without notes",
			notes:     "",
			imageURLs: []string{"https://x/1.jpg", "https://x/2.jpg"},
			expected: "INPUT:\n" +
				"- Item notes: (none provided)\n" +
				"- Image URLs (optional): https://x/1.jpg, https://x/2.jpg",
		},
		{
			name:      "nil images and empty notes",
			notes:     "",
			imageURLs: nil,
			expected: "INPUT:\n" +
				"- Item notes: (none provided)\n" +
				"- Image URLs (optional): (none)",
		},
		{
			name:      "whitespace notes are kept verbatim",
			notes:     "   ",
			imageURLs: nil,
			expected: "INPUT:\n" +
				"- Item notes:    \n" +
				"- Image URLs (optional): (none)",
		},
		{
			name:      "notes containing format verbs are kept verbatim",
			notes:     "100% wool, %s tag",
			imageURLs: []string{"https://x/1.jpg"},
			expected: "INPUT:\n" +
				"- Item notes: 100% wool, %s tag\n" +
				"- Image URLs (optional): https://x/1.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatInput(tt.notes, tt.imageURLs))
		})
	}
}

func TestBuildUserPrompt_Sections(t *testing.T) {
	builder := NewPromptBuilder()
	prompt := builder.BuildUserPrompt("Wool coat, size M", nil)

	assert.True(t, strings.HasPrefix(prompt, "You are a world-class SEO listing generator"))
	assert.Contains(t, prompt, "Return JSON ONLY")
	assert.Contains(t, prompt, "- Item notes: Wool coat, size M")
	assert.Contains(t, prompt, "- Image URLs (optional): (none)")

	// Requirements
	assert.Contains(t, prompt, "Depop, eBay, Poshmark, Mercari")
	assert.Contains(t, prompt, "never exceed 80")
	assert.Contains(t, prompt, "Hashtags (10-15")
	assert.Contains(t, prompt, `"Accept Offers Down To"`)
	assert.Contains(t, prompt, `"estimated"`)

	// Output contract
	assert.Contains(t, prompt, `"platforms"`)
	for _, key := range []string{`"depop"`, `"ebay"`, `"poshmark"`, `"mercari"`} {
		assert.Contains(t, prompt, key)
	}

	// Section order
	inputIdx := strings.Index(prompt, "INPUT:")
	reqIdx := strings.Index(prompt, "REQUIREMENTS")
	shapeIdx := strings.Index(prompt, "OUTPUT JSON SHAPE")
	assert.Less(t, inputIdx, reqIdx)
	assert.Less(t, reqIdx, shapeIdx)
}

func TestBuildUserPrompt_Deterministic(t *testing.T) {
	builder := NewPromptBuilder()
	urls := []string{"https://x/1.jpg"}

	first := builder.BuildUserPrompt("Silk scarf", urls)
	second := builder.BuildUserPrompt("Silk scarf", urls)

	assert.Equal(t, first, second)
}

func TestSystemPrompt(t *testing.T) {
	builder := NewPromptBuilder()
	assert.Equal(t, "You generate impeccable, platform-optimized secondhand fashion listings.", builder.SystemPrompt())
}
