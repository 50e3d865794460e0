package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relist_api_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "relist_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"endpoint"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relist_generations_total",
			Help: "Total number of listing generations by provider, model and outcome",
		},
		[]string{"provider", "model", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relist_generation_duration_seconds",
			Help:    "Duration of listing generations in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"provider", "model"},
	)

	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relist_llm_tokens_total",
			Help: "Total number of LLM tokens by model and direction",
		},
		[]string{"model", "direction"},
	)
)

// Prometheus records into the package-level collectors served on /metrics
type Prometheus struct{}

// NewPrometheus returns the Prometheus recorder
func NewPrometheus() *Prometheus {
	return &Prometheus{}
}

func (p *Prometheus) RecordAPIRequest(_ context.Context, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (p *Prometheus) RecordGeneration(_ context.Context, provider, model, outcome string, duration time.Duration) {
	GenerationsTotal.WithLabelValues(provider, model, outcome).Inc()
	GenerationDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}

func (p *Prometheus) RecordTokenUsage(_ context.Context, model string, inputTokens, outputTokens, _ int64) {
	LLMTokensTotal.WithLabelValues(model, "input").Add(float64(inputTokens))
	LLMTokensTotal.WithLabelValues(model, "output").Add(float64(outputTokens))
}
