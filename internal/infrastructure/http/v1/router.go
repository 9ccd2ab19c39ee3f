// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"trash/internal/infrastructure/http/v1/handlers"
	"trash/internal/infrastructure/http/v1/middleware"
	"trash/internal/infrastructure/metrics"
	"trash/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// PostService backs /api/v1/posts
	PostService handlers.PostService

	// DB is checked by the readiness probe. May be nil.
	DB handlers.Pinger

	// Metrics enables request metrics and GET /metrics. May be nil.
	Metrics *metrics.Metrics
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	registerPostRoutes(v1, cfg)

	return router
}

// registerPostRoutes registers the trashable posts resource.
func registerPostRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.PostService == nil {
		return
	}

	handler := handlers.NewPostHandler(handlers.NewBaseHandler(), cfg.PostService)

	group := rg.Group("/posts")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PATCH("/:id", handler.Update)
	group.POST("/:id/discard", handler.Discard)
	group.POST("/:id/restore", handler.Restore)
}
