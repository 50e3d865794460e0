package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptLoader(t *testing.T) {
	loader := NewPromptLoader()
	if loader == nil {
		t.Fatal("NewPromptLoader() returned nil")
	}
}

func TestGetSystemPrompt(t *testing.T) {
	content := NewPromptLoader().GetSystemPrompt()

	if content == "" {
		t.Fatal("GetSystemPrompt() returned empty string")
	}

	if !strings.Contains(content, "secondhand fashion listings") {
		t.Error("GetSystemPrompt() does not contain expected content")
	}

	if strings.HasSuffix(content, "\n") {
		t.Error("GetSystemPrompt() was not trimmed")
	}
}

func TestGetListingRequirements(t *testing.T) {
	content := NewPromptLoader().GetListingRequirements()

	if !strings.HasPrefix(content, "REQUIREMENTS (listing-format v1):") {
		t.Errorf("GetListingRequirements() missing versioned header, got %q", content[:40])
	}

	for _, section := range []string{
		"SEO-Optimized Title",
		"Intro Paragraph",
		"Details",
		"Trending Style Tags & Categories",
		"Hashtags",
	} {
		if !strings.Contains(content, section) {
			t.Errorf("GetListingRequirements() missing section %q", section)
		}
	}
}

func TestGetOutputShape(t *testing.T) {
	content := NewPromptLoader().GetOutputShape()

	if !strings.Contains(content, "OUTPUT JSON SHAPE") || !strings.Contains(content, `"minAccept"`) {
		t.Error("GetOutputShape() does not contain expected content")
	}
}

func TestGetListingPreamble(t *testing.T) {
	content := NewPromptLoader().GetListingPreamble()

	if !strings.Contains(content, "No markdown") {
		t.Error("GetListingPreamble() does not contain expected content")
	}
}
