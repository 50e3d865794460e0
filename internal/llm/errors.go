package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOutput is returned when the upstream call succeeded but carried no text
	ErrEmptyOutput = errors.New("model response did not include any output text")
	// ErrMalformedResponse is returned when the upstream envelope cannot be decoded
	ErrMalformedResponse = errors.New("malformed model response")
)

// UpstreamError is a non-success response from the generation API.
// Body holds the upstream response text verbatim.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Body)
}

// MissingCredentialError reports that the API key for a provider is not configured
type MissingCredentialError struct {
	Provider string
	EnvVar   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s API key not configured (%s)", e.Provider, e.EnvVar)
}
