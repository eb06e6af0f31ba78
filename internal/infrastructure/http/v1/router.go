// Package v1 provides the HTTP API.
package v1

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"inventrack/internal/infrastructure/http/v1/handlers"
	"inventrack/internal/infrastructure/http/v1/middleware"
	"inventrack/internal/infrastructure/metrics"
	"inventrack/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	Products handlers.ProductService
	Sales    handlers.SalesService

	// DB backs the health probes
	DB handlers.DBProbe

	// Metrics is optional; nil disables /metrics and request metrics
	Metrics *metrics.Metrics

	// CORSAllowedOrigins lists browser origins; "*" allows any
	CORSAllowedOrigins []string

	// StaticDir holds the web UI; empty disables static hosting
	StaticDir string

	Version string
	Debug   bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Recovery sits inside ErrorHandler so a recovered panic is rendered.
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	baseHandler := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api")
	registerProductRoutes(api, handlers.NewProductHandler(baseHandler, cfg.Products))
	registerSalesRoutes(api, handlers.NewSalesHandler(baseHandler, cfg.Sales))

	router.NoRoute(handlers.NewStaticHandler(baseHandler, cfg.StaticDir).NoRoute)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.HeaderRequestID, middleware.HeaderTraceID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID, middleware.HeaderTraceID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
