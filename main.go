package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/relist-api/internal/api"
	"github.com/Conceptual-Machines/relist-api/internal/config"
	"github.com/Conceptual-Machines/relist-api/internal/llm"
	"github.com/Conceptual-Machines/relist-api/internal/logger"
	"github.com/Conceptual-Machines/relist-api/internal/metrics"
	"github.com/Conceptual-Machines/relist-api/internal/observability"
	"github.com/Conceptual-Machines/relist-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "relist-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			logger.Error("Failed to initialize Sentry", err, nil)
		} else {
			logger.Info("Sentry initialized", logger.Fields{
				"environment": cfg.Environment,
				"release":     releaseVersion,
			})
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		logger.Warn("Sentry not configured (SENTRY_DSN not set)", nil)
	}

	ctx := context.Background()

	langfuseClient := observability.InitializeLangfuse(ctx, cfg)

	cloudWatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		logger.Warn("CloudWatch metrics unavailable", logger.Fields{"error": err.Error()})
	}
	recorders := []metrics.Recorder{metrics.NewSentryMetrics(), metrics.NewPrometheus()}
	if cloudWatch != nil {
		recorders = append(recorders, cloudWatch)
	}
	recorder := metrics.NewMulti(recorders...)

	factory := llm.NewProviderFactory(llm.ProviderSettings{
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiAPIKey:  cfg.GeminiAPIKey,
	})

	relay, err := services.NewListingRelay(ctx, cfg, factory,
		services.WithRecorder(recorder),
		services.WithLangfuse(langfuseClient),
	)
	if err != nil {
		sentry.CaptureException(err)
		logger.Error("Failed to create listing relay", err, nil)
		log.Fatal("Failed to create listing relay:", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(cfg, relay, recorder, GetVersion())

	logger.Info("Starting server", logger.Fields{"port": cfg.Port})
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		logger.Error("Failed to start server", err, nil)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
