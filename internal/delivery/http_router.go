package delivery

import (
	"time"

	"github.com/adirathodd/cs-490-project-sub009/internal/delivery/middleware"
	"github.com/adirathodd/cs-490-project-sub009/pkg/logger"
	"github.com/adirathodd/cs-490-project-sub009/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, timeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.timeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID", "X-User-ID", "Authorization"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Workspace lifecycle
		workspace := v1.Group("/workspace")
		{
			workspace.POST("", r.handlers.OpenWorkspace)
			workspace.DELETE("", r.handlers.CloseWorkspace)
		}

		// Dashboard panels, filters, goals, watch mode
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/analytics", r.handlers.GetAnalytics)
			dashboard.GET("/competitive", r.handlers.GetCompetitive)
			dashboard.PUT("/filters", r.handlers.UpdateFilters)
			dashboard.POST("/filters/reset", r.handlers.ResetFilters)
			dashboard.POST("/refresh", r.handlers.RefreshDashboard)
			dashboard.PUT("/goals", r.handlers.SaveGoals)
			dashboard.PUT("/watch", r.handlers.SetWatch)
		}

		// Negotiation plan, offer buffer and outcome ledger
		negotiation := v1.Group("/negotiation")
		{
			negotiation.GET("/plan", r.handlers.GetNegotiationPlan)
			negotiation.PUT("/offer", r.handlers.StageOffer)
			negotiation.POST("/offer/save", r.handlers.SaveOffer)
			negotiation.GET("/outcomes", r.handlers.ListOutcomes)
			negotiation.POST("/outcomes", r.handlers.CreateOutcome)
			negotiation.DELETE("/outcomes/:id", r.handlers.DeleteOutcome)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
