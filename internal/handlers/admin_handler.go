package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlerutils "github.com/chamberhq/services-portal-api/internal/handlers/utils"
	"github.com/chamberhq/services-portal-api/internal/service"
	"github.com/chamberhq/services-portal-api/internal/utils"
)

// AdminHandler handles administrative HTTP requests
type AdminHandler struct {
	applicationService *service.ApplicationService
	logger             *logrus.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(applicationService *service.ApplicationService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Reset handles POST /admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.applicationService.Reset(c.Request.Context()); err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendNoContentResponse(c)
}
