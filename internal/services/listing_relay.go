package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/relist-api/internal/config"
	"github.com/Conceptual-Machines/relist-api/internal/llm"
	"github.com/Conceptual-Machines/relist-api/internal/logger"
	"github.com/Conceptual-Machines/relist-api/internal/metrics"
	"github.com/Conceptual-Machines/relist-api/internal/models"
	"github.com/Conceptual-Machines/relist-api/internal/observability"
	"github.com/Conceptual-Machines/relist-api/internal/prompt"
)

// ProviderResolver picks the LLM provider for a model (implemented by llm.ProviderFactory)
type ProviderResolver interface {
	GetProvider(ctx context.Context, model, providerName string) (llm.Provider, error)
}

// ListingRelay turns item notes and image URLs into listings for four
// marketplaces with exactly one upstream model call. It holds no per-request
// state and is safe for concurrent use.
type ListingRelay struct {
	provider    llm.Provider
	providerErr error
	params      LLMParameters
	builder     *prompt.Builder
	validator   *ListingValidator
	timeout     time.Duration
	recorder    metrics.Recorder
	langfuse    *observability.LangfuseClient
}

// RelayOption configures a ListingRelay
type RelayOption func(*ListingRelay)

// WithRecorder sets the metrics recorder
func WithRecorder(recorder metrics.Recorder) RelayOption {
	return func(r *ListingRelay) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

// WithLangfuse sets the Langfuse client used for generation traces
func WithLangfuse(client *observability.LangfuseClient) RelayOption {
	return func(r *ListingRelay) {
		r.langfuse = client
	}
}

// NewListingRelay resolves the configured provider once. A missing credential
// does not fail construction; every Generate call reports it instead.
func NewListingRelay(ctx context.Context, cfg *config.Config, resolver ProviderResolver, opts ...RelayOption) (*ListingRelay, error) {
	params := GetLLMParameters(cfg)
	provider, err := resolver.GetProvider(ctx, params.Model, params.Provider)
	if err != nil {
		logger.Warn("Generation provider unavailable", logger.Fields{
			"provider": params.Provider,
			"model":    params.Model,
			"error":    err.Error(),
		})
	}
	return newListingRelay(cfg, params, provider, err, opts...)
}

// NewListingRelayWithProvider creates a relay around a specific provider
func NewListingRelayWithProvider(cfg *config.Config, provider llm.Provider, opts ...RelayOption) (*ListingRelay, error) {
	return newListingRelay(cfg, GetLLMParameters(cfg), provider, nil, opts...)
}

func newListingRelay(
	cfg *config.Config, params LLMParameters, provider llm.Provider, providerErr error, opts ...RelayOption,
) (*ListingRelay, error) {
	validator, err := NewListingValidator()
	if err != nil {
		return nil, err
	}

	if provider == nil && providerErr == nil {
		providerErr = fmt.Errorf("no generation provider configured")
	}

	r := &ListingRelay{
		provider:    provider,
		providerErr: providerErr,
		params:      params,
		builder:     prompt.NewPromptBuilder(),
		validator:   validator,
		timeout:     cfg.GenerationTimeout,
		recorder:    metrics.Nop{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if provider != nil {
		logger.Info("Listing relay initialized", logger.Fields{
			"provider":    provider.Name(),
			"model":       params.Model,
			"temperature": params.Temperature,
			"strict":      params.OutputSchema.Strict,
			"timeout":     r.timeout.String(),
		})
	}

	return r, nil
}

// Ready reports whether a provider with credentials is configured
func (r *ListingRelay) Ready() bool {
	return r.providerErr == nil
}

// ProviderName returns the configured provider name
func (r *ListingRelay) ProviderName() string {
	if r.provider != nil {
		return r.provider.Name()
	}
	return r.params.Provider
}

// Model returns the configured model
func (r *ListingRelay) Model() string {
	return r.params.Model
}

// Generate produces listings for all four platforms. The returned error is
// always a *RelayError; on failure the result is nil.
func (r *ListingRelay) Generate(ctx context.Context, req *models.GenerationRequest) (result *models.GenerationResult, err error) {
	start := time.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = panicError(recovered)
		}
		r.finish(ctx, start, err)
	}()

	if r.providerErr != nil {
		return nil, r.configurationError()
	}

	if req == nil {
		req = &models.GenerationRequest{}
	}

	request := r.params.BuildRequest(r.builder.SystemPrompt(), r.builder.BuildUserPrompt(req.ItemNotes, req.ImageURLs))

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	trace := r.langfuse.StartTrace(ctx, "listing.generate", map[string]any{
		"provider":   r.provider.Name(),
		"image_urls": len(req.ImageURLs),
	})
	defer trace.Finish()

	generation := trace.Generation(r.provider.Name()+".generate", map[string]any{"model": r.params.Model})
	defer generation.Finish()

	resp, callErr := r.provider.Generate(callCtx, request)
	if callErr != nil {
		relayErr := classifyProviderError(callErr)
		generation.Fail(relayErr.Message)
		return nil, relayErr
	}

	generation.LogCompletion(r.params.Model, request.InputArray, resp)
	r.recorder.RecordTokenUsage(ctx, r.params.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens)
	logger.LogGenerationRequest(ctx, resp.Model, time.Since(start),
		resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens,
		logger.Fields{"provider": r.provider.Name()})

	listings, decodeErr := r.validator.Decode(resp.RawOutput)
	if decodeErr != nil {
		generation.Fail(decodeErr.Error())
		return nil, decodeErr
	}

	return listings, nil
}

// configurationError reports the missing credential without contacting upstream
func (r *ListingRelay) configurationError() *RelayError {
	var missing *llm.MissingCredentialError
	if errors.As(r.providerErr, &missing) {
		return newRelayError(ConfigurationError, fmt.Sprintf("Missing %s server env var.", missing.EnvVar), r.providerErr)
	}
	return newRelayError(ConfigurationError, r.providerErr.Error(), r.providerErr)
}

// finish records metrics and logs for one call
func (r *ListingRelay) finish(ctx context.Context, start time.Time, err error) {
	duration := time.Since(start)
	outcome := metrics.OutcomeSuccess

	if err != nil {
		relayErr := AsRelayError(err)
		outcome = string(relayErr.Kind)

		fields := logger.Fields{
			"provider":    r.ProviderName(),
			"model":       r.params.Model,
			"error_kind":  outcome,
			"duration_ms": duration.Milliseconds(),
		}
		switch relayErr.Kind {
		case UpstreamTransportError, UpstreamFormatError:
			fields["error"] = relayErr.Message
			if relayErr.Err != nil {
				fields["cause"] = relayErr.Err.Error()
			}
			logger.Warn("Listing generation failed", fields)
		default:
			logger.Error("Listing generation failed", relayErr, fields)
		}
	}

	r.recorder.RecordGeneration(ctx, r.ProviderName(), r.params.Model, outcome, duration)
}

// classifyProviderError maps provider errors onto relay error kinds
func classifyProviderError(err error) *RelayError {
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		// The body is surfaced verbatim, even when empty; the status stays in the cause for logs
		return &RelayError{Kind: UpstreamTransportError, Message: upstream.Body, Err: err}
	}

	var missing *llm.MissingCredentialError
	if errors.As(err, &missing) {
		return newRelayError(ConfigurationError, fmt.Sprintf("Missing %s server env var.", missing.EnvVar), err)
	}

	if errors.Is(err, llm.ErrEmptyOutput) || errors.Is(err, llm.ErrMalformedResponse) {
		return newRelayError(UpstreamFormatError, err.Error(), err)
	}

	return newRelayError(UpstreamTransportError, err.Error(), err)
}
