package config

import (
	"time"

	"github.com/spf13/viper"
)

// Provider names accepted by GENERATION_PROVIDER
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Response formats accepted by GENERATION_RESPONSE_FORMAT
const (
	ResponseFormatJSONObject = "json_object"
	ResponseFormatJSONSchema = "json_schema"
)

const (
	defaultOpenAIModel = "gpt-4o"
	defaultGeminiModel = "gemini-2.5-flash"
	defaultTemperature = 0.6
)

// Config holds the application configuration
// Note: The service is stateless - no database, no user accounts, no sessions
type Config struct {
	// Environment
	Environment string
	Port        string
	LogLevel    string // debug, info, warn, error
	LogFormat   string // "json" or "console"

	// Generation
	GenerationProvider    string        // "openai" (default) or "gemini"
	GenerationModel       string        // Empty = provider default
	GenerationTemperature float64       // Fixed sampling temperature for every call
	GenerationTimeout     time.Duration // 0 = no local timeout on the upstream call
	ResponseFormat        string        // "json_object" or "json_schema"

	// LLM API Keys
	OpenAIAPIKey  string // OpenAI API key for GPT models
	OpenAIBaseURL string // Override for proxies and tests; empty uses the public API
	GeminiAPIKey  string // Google Gemini API key

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse

	// CORS
	CORSAllowedOrigins string // Comma-separated, "*" allows any origin
}

// Load reads the configuration from the environment once at startup.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("GENERATION_PROVIDER", ProviderOpenAI)
	v.SetDefault("GENERATION_MODEL", "")
	v.SetDefault("GENERATION_TEMPERATURE", defaultTemperature)
	v.SetDefault("GENERATION_TIMEOUT", "0s")
	v.SetDefault("GENERATION_RESPONSE_FORMAT", ResponseFormatJSONObject)
	v.SetDefault("LANGFUSE_HOST", "https://cloud.langfuse.com")
	v.SetDefault("LANGFUSE_ENABLED", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := &Config{
		Environment:           v.GetString("ENVIRONMENT"),
		Port:                  v.GetString("PORT"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		LogFormat:             v.GetString("LOG_FORMAT"),
		GenerationProvider:    v.GetString("GENERATION_PROVIDER"),
		GenerationModel:       v.GetString("GENERATION_MODEL"),
		GenerationTemperature: v.GetFloat64("GENERATION_TEMPERATURE"),
		GenerationTimeout:     v.GetDuration("GENERATION_TIMEOUT"),
		ResponseFormat:        v.GetString("GENERATION_RESPONSE_FORMAT"),
		OpenAIAPIKey:          v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:         v.GetString("OPENAI_BASE_URL"),
		GeminiAPIKey:          v.GetString("GEMINI_API_KEY"),
		SentryDSN:             v.GetString("SENTRY_DSN"),
		LangfusePublicKey:     v.GetString("LANGFUSE_PUBLIC_KEY"),
		LangfuseSecretKey:     v.GetString("LANGFUSE_SECRET_KEY"),
		LangfuseHost:          v.GetString("LANGFUSE_HOST"),
		LangfuseEnabled:       v.GetBool("LANGFUSE_ENABLED"),
		CORSAllowedOrigins:    v.GetString("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.GenerationModel == "" {
		cfg.GenerationModel = cfg.DefaultModel()
	}

	return cfg
}

// DefaultModel returns the model used when GENERATION_MODEL is not set
func (c *Config) DefaultModel() string {
	if c.GenerationProvider == ProviderGemini {
		return defaultGeminiModel
	}
	return defaultOpenAIModel
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UseJSONSchema reports whether strict JSON schema output was requested
func (c *Config) UseJSONSchema() bool {
	return c.ResponseFormat == ResponseFormatJSONSchema
}
