package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a generation failed
type ErrorKind string

const (
	ConfigurationError     ErrorKind = "configuration"
	UpstreamTransportError ErrorKind = "upstream_transport"
	UpstreamFormatError    ErrorKind = "upstream_format"
	UnknownError           ErrorKind = "unknown"
)

// ErrorKindHeader carries the ErrorKind of a failed generation on HTTP responses
const ErrorKindHeader = "X-Error-Kind"

// DefaultUnknownMessage is used when a failure carries no message of its own
const DefaultUnknownMessage = "Unknown error"

// RelayError is the only error type returned by ListingRelay.Generate.
// Message is the text surfaced to callers; Err keeps the cause for logs.
type RelayError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RelayError) Error() string {
	return e.Message
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// AsRelayError converts any error into a RelayError, defaulting to UnknownError
func AsRelayError(err error) *RelayError {
	if err == nil {
		return nil
	}
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr
	}
	return newRelayError(UnknownError, err.Error(), err)
}

func newRelayError(kind ErrorKind, message string, cause error) *RelayError {
	if message == "" {
		message = DefaultUnknownMessage
	}
	return &RelayError{Kind: kind, Message: message, Err: cause}
}

// panicError converts a recovered panic value into an UnknownError
func panicError(recovered any) *RelayError {
	switch v := recovered.(type) {
	case error:
		return newRelayError(UnknownError, v.Error(), v)
	case string:
		return newRelayError(UnknownError, v, nil)
	default:
		return newRelayError(UnknownError, "", fmt.Errorf("panic: %v", v))
	}
}
