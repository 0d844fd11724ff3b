package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/chamberhq/services-portal-api/internal/config"
	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/handlers"
	"github.com/chamberhq/services-portal-api/internal/metrics"
	"github.com/chamberhq/services-portal-api/internal/middleware"
	"github.com/chamberhq/services-portal-api/internal/service"
)

// SetupRouter configures all API routes
func SetupRouter(
	cfg *config.Config,
	db *database.DB,
	applicationService *service.ApplicationService,
	listingService *service.ListingService,
	statsService *service.StatsService,
	advisor service.Advisor,
	policy service.AccessPolicy,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CorrelationIDMiddleware())
	if cfg.CORS.Enabled {
		router.Use(middleware.CORSMiddleware(&cfg.CORS))
	}
	router.Use(m.GinMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "database": "down"})
			return
		}
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService, listingService, advisor, policy, logger)
	dashboardHandler := handlers.NewDashboardHandler(statsService, applicationService, logger)
	adminHandler := handlers.NewAdminHandler(applicationService, logger)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		applications := v1.Group("/applications")
		{
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("", applicationHandler.ListApplications)
			applications.GET("/:appId", applicationHandler.GetApplication)
			applications.PATCH("/:appId", applicationHandler.UpdateApplication)
			applications.GET("/:appId/activity", applicationHandler.GetActivity)
			if cfg.Advisor.Enabled {
				applications.POST("/:appId/suggest-response", applicationHandler.SuggestResponse)
			}
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/activity", dashboardHandler.GetActivityFeed)
		}

		v1.POST("/admin/reset", adminHandler.Reset)
	}

	return router
}
