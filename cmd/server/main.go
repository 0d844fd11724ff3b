package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chamberhq/services-portal-api/internal/config"
	"github.com/chamberhq/services-portal-api/internal/dao"
	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/metrics"
	"github.com/chamberhq/services-portal-api/internal/router"
	"github.com/chamberhq/services-portal-api/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting Chamber Services Portal API...")

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Set log level from config
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.WithFields(logrus.Fields{
		"config_path": configPath,
		"log_level":   logger.GetLevel().String(),
	}).Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Initialize(&cfg.Database.Portal, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Verify database connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		logger.WithError(err).Fatal("Database health check failed")
	}

	logger.Info("Database connection established successfully")

	// Initialize DAOs
	applicationDAO := dao.NewApplicationDAO(db)
	esgDAO := dao.NewESGExtensionDAO(db)
	knowledgeDAO := dao.NewKnowledgeExtensionDAO(db)
	dealDAO := dao.NewDealExtensionDAO(db)
	legacyDAO := dao.NewLegacyDAO(db)
	certificateDAO := dao.NewCertificateDAO(db)
	activityLogDAO := dao.NewActivityLogDAO(db)

	logger.Info("DAOs initialized successfully")

	// Initialize metrics
	m := metrics.New()

	// Initialize services
	applicationService := service.NewApplicationService(
		applicationDAO,
		esgDAO,
		knowledgeDAO,
		dealDAO,
		legacyDAO,
		certificateDAO,
		activityLogDAO,
		&cfg.SLA,
		db,
		logger,
		m,
	)

	listingService := service.NewListingService(
		applicationDAO,
		esgDAO,
		knowledgeDAO,
		dealDAO,
		legacyDAO,
		&cfg.SLA,
		logger,
	)

	statsService := service.NewStatsService(applicationDAO, legacyDAO, logger)

	advisor := service.NewCannedAdvisor()
	policy := service.NewAllowAll()

	logger.Info("Services initialized successfully")

	// Setup router
	ginRouter := router.SetupRouter(cfg, db, applicationService, listingService, statsService, advisor, policy, m, logger)

	// Configure HTTP server
	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
			"addr":     serverAddr,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("✓ Server is running")
	logger.Info("Press Ctrl+C to stop the server")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database connection")
	}

	logger.Info("Server exited gracefully")
}
