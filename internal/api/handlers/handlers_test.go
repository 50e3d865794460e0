package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Conceptual-Machines/relist-api/internal/models"
	"github.com/Conceptual-Machines/relist-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls       int
	lastRequest *models.GenerationRequest
	result      *models.GenerationResult
	err         error
}

func (f *fakeGenerator) Generate(_ context.Context, req *models.GenerationRequest) (*models.GenerationResult, error) {
	f.calls++
	f.lastRequest = req
	return f.result, f.err
}

type fakeStatus struct {
	ready bool
}

func (f fakeStatus) Ready() bool          { return f.ready }
func (f fakeStatus) ProviderName() string { return "openai" }
func (f fakeStatus) Model() string        { return "gpt-4o" }

func init() {
	gin.SetMode(gin.TestMode)
}

func listing(title string) *models.PlatformListing {
	return &models.PlatformListing{
		Title:    title,
		Intro:    "intro",
		Details:  "details",
		Tags:     []string{"wool"},
		Hashtags: []string{"#wool"},
		Pricing:  &models.Pricing{Price: 40, ListHigh: 55, MinAccept: 32},
	}
}

func postGenerate(t *testing.T, generator ListingGenerator, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/api/generate", NewGenerateHandler(generator).Generate)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestGenerate_Success(t *testing.T) {
	generator := &fakeGenerator{result: &models.GenerationResult{Platforms: models.Platforms{
		Depop: listing("d"), Ebay: listing("e"), Poshmark: listing("p"), Mercari: listing("m"),
	}}}

	w := postGenerate(t, generator, `{"itemNotes":"Wool coat, size M","imageUrls":["https://x/1.jpg"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(services.ErrorKindHeader))
	assert.Equal(t, "Wool coat, size M", generator.lastRequest.ItemNotes)
	assert.Equal(t, []string{"https://x/1.jpg"}, generator.lastRequest.ImageURLs)

	var body map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body["platforms"], 4)
	for _, key := range []string{"depop", "ebay", "poshmark", "mercari"} {
		assert.Contains(t, body["platforms"], key)
	}
}

func TestGenerate_EmptyBody(t *testing.T) {
	generator := &fakeGenerator{result: &models.GenerationResult{}}

	w := postGenerate(t, generator, "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, generator.calls)
	assert.Empty(t, generator.lastRequest.ItemNotes)
	assert.Empty(t, generator.lastRequest.ImageURLs)
}

func TestGenerate_InvalidJSON(t *testing.T) {
	generator := &fakeGenerator{}

	w := postGenerate(t, generator, `{"itemNotes":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "unknown", w.Header().Get(services.ErrorKindHeader))
	assert.Zero(t, generator.calls)

	var body models.ErrorResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedKind string
		expectedBody string
	}{
		{
			name:         "missing credential",
			err:          &services.RelayError{Kind: services.ConfigurationError, Message: "Missing OPENAI_API_KEY server env var."},
			expectedKind: "configuration",
			expectedBody: `{"error":"Missing OPENAI_API_KEY server env var."}`,
		},
		{
			name:         "upstream body forwarded verbatim",
			err:          &services.RelayError{Kind: services.UpstreamTransportError, Message: "rate limited"},
			expectedKind: "upstream_transport",
			expectedBody: `{"error":"rate limited"}`,
		},
		{
			name:         "empty upstream body",
			err:          &services.RelayError{Kind: services.UpstreamTransportError, Message: ""},
			expectedKind: "upstream_transport",
			expectedBody: `{"error":""}`,
		},
		{
			name:         "format failure",
			err:          &services.RelayError{Kind: services.UpstreamFormatError, Message: "Model returned empty output"},
			expectedKind: "upstream_format",
			expectedBody: `{"error":"Model returned empty output"}`,
		},
		{
			name:         "plain error",
			err:          errors.New("boom"),
			expectedKind: "unknown",
			expectedBody: `{"error":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postGenerate(t, &fakeGenerator{err: tt.err}, `{"itemNotes":"x"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tt.expectedKind, w.Header().Get(services.ErrorKindHeader))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHealthCheck(t *testing.T) {
	router := gin.New()
	router.GET("/health", NewHealthHandler(fakeStatus{ready: false}).HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "healthy",
		"generation": {"provider": "openai", "model": "gpt-4o", "credential_configured": false}
	}`, w.Body.String())
}

func TestGetMetrics(t *testing.T) {
	router := gin.New()
	router.GET("/api/metrics", NewMetricsHandler("1.2.3", fakeStatus{ready: true}).GetMetrics)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body MetricsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
	assert.True(t, body.Generation.CredentialConfigured)
	assert.Equal(t, "gpt-4o", body.Generation.Model)
	assert.NotEmpty(t, body.System.GoVersion)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{2*time.Minute + 3*time.Second, "2m3.00s"},
		{time.Hour + time.Minute + time.Second, "1h1m1.00s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatUptime(tt.duration))
	}
}
