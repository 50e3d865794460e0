package api

import (
	"github.com/Conceptual-Machines/relist-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/relist-api/internal/api/middleware"
	"github.com/Conceptual-Machines/relist-api/internal/config"
	"github.com/Conceptual-Machines/relist-api/internal/metrics"
	webhandlers "github.com/Conceptual-Machines/relist-api/internal/web/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ListingService is the relay as seen by the HTTP layer
type ListingService interface {
	handlers.ListingGenerator
	handlers.GenerationStatus
}

func SetupRouter(cfg *config.Config, relay ListingService, recorder metrics.Recorder, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(relay)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoints
	metricsHandler := handlers.NewMetricsHandler(version, relay)
	router.GET("/api/metrics", metricsHandler.GetMetrics)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Web shell
	webHandler := webhandlers.NewWebHandler(relay)
	router.GET("/", webHandler.Home)
	router.POST("/htmx/generate", webHandler.Generate)

	api := router.Group("/api")
	{
		generateHandler := handlers.NewGenerateHandler(relay)
		api.POST("/generate", generateHandler.Generate)
	}

	return router
}
