package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlerutils "github.com/chamberhq/services-portal-api/internal/handlers/utils"
	"github.com/chamberhq/services-portal-api/internal/models"
	"github.com/chamberhq/services-portal-api/internal/service"
	"github.com/chamberhq/services-portal-api/internal/utils"
)

// ApplicationHandler handles application-related HTTP requests
type ApplicationHandler struct {
	applicationService *service.ApplicationService
	listingService     *service.ListingService
	advisor            service.Advisor
	policy             service.AccessPolicy
	logger             *logrus.Logger
}

// NewApplicationHandler creates a new application handler instance
func NewApplicationHandler(
	applicationService *service.ApplicationService,
	listingService *service.ListingService,
	advisor service.Advisor,
	policy service.AccessPolicy,
	logger *logrus.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		listingService:     listingService,
		advisor:            advisor,
		policy:             policy,
		logger:             logger,
	}
}

// CreateApplication handles POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var request models.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	detail, err := h.applicationService.CreateApplication(c.Request.Context(), &request)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendCreatedResponse(c, detail)
}

// ListApplications handles GET /applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var filter models.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequestError(c, "Invalid query parameters", err.Error())
		return
	}

	// The applicant identity header narrows the listing to own records
	if email := utils.GetApplicantEmailFromContext(c); email != "" {
		filter.ApplicantEmail = email
	}

	response, err := h.listingService.List(c.Request.Context(), &filter)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, response)
}

// GetApplication handles GET /applications/:appId
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	appID := c.Param("appId")
	applicantEmail := utils.GetApplicantEmailFromContext(c)

	detail, err := h.applicationService.GetApplication(c.Request.Context(), appID, applicantEmail)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, detail)
}

// UpdateApplication handles PATCH /applications/:appId
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	appID := c.Param("appId")
	actor := utils.GetActorFromContext(c)

	if !h.policy.CanMutate(actor, appID) {
		utils.SendErrorWithCode(c, models.ErrCodeForbidden, "Not allowed to modify this application")
		return
	}

	var request models.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	detail, err := h.applicationService.UpdateApplication(c.Request.Context(), appID, &request, actor)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, detail)
}

// GetActivity handles GET /applications/:appId/activity
func (h *ApplicationHandler) GetActivity(c *gin.Context) {
	appID := c.Param("appId")
	applicantEmail := utils.GetApplicantEmailFromContext(c)

	entries, err := h.applicationService.GetActivity(c.Request.Context(), appID, applicantEmail)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"entries": entries})
}

// SuggestResponse handles POST /applications/:appId/suggest-response
func (h *ApplicationHandler) SuggestResponse(c *gin.Context) {
	appID := c.Param("appId")

	detail, err := h.applicationService.GetApplication(c.Request.Context(), appID, "")
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	suggestion, err := h.advisor.SuggestResponse(c.Request.Context(), detail)
	if err != nil {
		handlerutils.RespondServiceError(c, h.logger, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"suggestion": suggestion})
}
