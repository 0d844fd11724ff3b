package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlerutils "github.com/chamberhq/services-portal-api/internal/handlers/utils"
	"github.com/chamberhq/services-portal-api/internal/service"
	"github.com/chamberhq/services-portal-api/internal/utils"
)

// DashboardHandler handles operations dashboard HTTP requests
type DashboardHandler struct {
	statsService       *service.StatsService
	applicationService *service.ApplicationService
	logger             *logrus.Logger
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(statsService *service.StatsService, applicationService *service.ApplicationService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService:       statsService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context(), time.Now())
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, stats)
}

// GetActivityFeed handles GET /dashboard/activity
func (h *DashboardHandler) GetActivityFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	params := utils.NewPaginationParams(limit, offset)

	feed, err := h.applicationService.GetActivityFeed(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, gin.H{
		"entries":    feed.Entries,
		"page":       params.GetPageNumber(),
		"pagination": utils.CalculatePaginationMetadata(feed.Total, feed.Limit, feed.Offset),
	})
}
