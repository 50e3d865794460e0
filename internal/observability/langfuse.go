package observability

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/relist-api/internal/config"
	"github.com/Conceptual-Machines/relist-api/internal/llm"
	"github.com/Conceptual-Machines/relist-api/internal/logger"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

// LangfuseClient wraps the Langfuse client with our configuration
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
	ctx     context.Context
}

// InitializeLangfuse creates the Langfuse client. When Langfuse is not configured
// the returned client is disabled and every trace is a no-op.
// The SDK reads LANGFUSE_HOST, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY from the environment.
func InitializeLangfuse(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" || cfg.LangfusePublicKey == "" {
		logger.Info("Langfuse not configured", logger.Fields{"enabled": cfg.LangfuseEnabled})
		return &LangfuseClient{enabled: false, ctx: ctx}
	}

	client := &LangfuseClient{
		client:  langfuse.New(ctx),
		enabled: true,
		ctx:     ctx,
	}

	logger.Info("Langfuse initialized", logger.Fields{"host": cfg.LangfuseHost})
	return client
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// StartTrace starts a new trace in Langfuse
func (c *LangfuseClient) StartTrace(ctx context.Context, name string, metadata map[string]any) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false, ctx: ctx}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		logger.Warn("Failed to create Langfuse trace", logger.Fields{"error": err.Error()})
		return &Trace{enabled: false, ctx: ctx}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		ctx:     ctx,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace
type Trace struct {
	trace   *model.Trace
	enabled bool
	ctx     context.Context
	client  *langfuse.Langfuse
}

// Generation creates a new generation span within the trace
func (t *Trace) Generation(name string, metadata map[string]any) *Generation {
	if !t.enabled {
		return &Generation{enabled: false}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &now,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		logger.Warn("Failed to create Langfuse generation", logger.Fields{"error": err.Error()})
		return &Generation{enabled: false}
	}

	return &Generation{
		generation: gen,
		enabled:    true,
		client:     t.client,
	}
}

// Finish flushes queued events. The flush runs detached from the request
// context so a finished request does not cancel delivery.
func (t *Trace) Finish() {
	if t.enabled && t.client != nil {
		go t.client.Flush(context.Background())
	}
}

// Generation represents a Langfuse generation span
type Generation struct {
	generation *model.Generation
	enabled    bool
	client     *langfuse.Langfuse
}

// LogCompletion records the prompt, the raw output, token usage and estimated cost
func (g *Generation) LogCompletion(modelName string, input []map[string]any, resp *llm.GenerationResponse) {
	if !g.enabled || g.generation == nil || resp == nil {
		return
	}

	cost := CalculateCost(modelName, resp.Usage)

	g.generation.Model = modelName
	g.generation.Input = input
	if resp.RawOutput != "" {
		g.generation.Output = resp.RawOutput
	}
	g.generation.Usage = model.Usage{
		Input:     int(resp.Usage.InputTokens),
		Output:    int(resp.Usage.OutputTokens),
		Total:     int(resp.Usage.TotalTokens),
		Unit:      model.ModelUsageUnitTokens,
		TotalCost: cost,
	}
	g.Metadata(map[string]any{"cost_usd": FormatCost(cost)})
}

// Metadata adds metadata to the generation
func (g *Generation) Metadata(metadata map[string]any) {
	if !g.enabled || g.generation == nil {
		return
	}
	md, ok := g.generation.Metadata.(map[string]any)
	if !ok || md == nil {
		md = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		md[k] = v
	}
	g.generation.Metadata = md
}

// Fail marks the generation as errored with a status message
func (g *Generation) Fail(message string) {
	if !g.enabled || g.generation == nil {
		return
	}
	g.generation.Level = model.ObservationLevelError
	g.generation.StatusMessage = message
}

// Finish completes the generation and queues it for sending
func (g *Generation) Finish() {
	if g.enabled && g.generation != nil && g.client != nil {
		now := time.Now()
		g.generation.EndTime = &now
		if _, err := g.client.GenerationEnd(g.generation); err != nil {
			logger.Warn("Failed to end Langfuse generation", logger.Fields{"error": err.Error()})
		}
	}
}
