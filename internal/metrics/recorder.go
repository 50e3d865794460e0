package metrics

import (
	"context"
	"time"
)

// OutcomeSuccess labels a generation that produced a valid listing set.
// Failed generations are labelled with their relay error kind.
const OutcomeSuccess = "success"

// Recorder receives the service's operational metrics
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordGeneration(ctx context.Context, provider, model, outcome string, duration time.Duration)
	RecordTokenUsage(ctx context.Context, model string, inputTokens, outputTokens, totalTokens int64)
}

// Multi fans every call out to each recorder in order
type Multi []Recorder

// NewMulti builds a Multi, skipping nil recorders
func NewMulti(recorders ...Recorder) Multi {
	m := make(Multi, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

func (m Multi) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m Multi) RecordGeneration(ctx context.Context, provider, model, outcome string, duration time.Duration) {
	for _, r := range m {
		r.RecordGeneration(ctx, provider, model, outcome, duration)
	}
}

func (m Multi) RecordTokenUsage(ctx context.Context, model string, inputTokens, outputTokens, totalTokens int64) {
	for _, r := range m {
		r.RecordTokenUsage(ctx, model, inputTokens, outputTokens, totalTokens)
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordAPIRequest(context.Context, string, int, time.Duration)          {}
func (Nop) RecordGeneration(context.Context, string, string, string, time.Duration) {}
func (Nop) RecordTokenUsage(context.Context, string, int64, int64, int64)          {}
