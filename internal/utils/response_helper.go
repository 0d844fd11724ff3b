package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamberhq/services-portal-api/internal/models"
)

// Identity headers set by the portal gateway
const (
	HeaderApplicantEmail = "applicant-email"
	HeaderActorID        = "actor-id"
)

// SendSuccessResponse sends a successful JSON response
func SendSuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendErrorWithCode sends an error response with the HTTP status derived from
// the API error code
func SendErrorWithCode(c *gin.Context, errCode, message string) {
	SendErrorResponse(c, models.HTTPStatusForErrorCode(errCode), errCode, message, "")
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendNotFoundError sends a 404 Not Found error
func SendNotFoundError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusNotFound, models.ErrCodeNotFound, message, "")
}

// SendConflictError sends a 409 Conflict error
func SendConflictError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusConflict, models.ErrCodeConflict, message, "")
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, message, details)
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", details)
}

// GetApplicantEmailFromContext extracts the applicant identity header. Empty
// means the request carries staff identity instead.
func GetApplicantEmailFromContext(c *gin.Context) string {
	return c.GetHeader(HeaderApplicantEmail)
}

// GetActorFromContext extracts the acting staff member header
func GetActorFromContext(c *gin.Context) string {
	return c.GetHeader(HeaderActorID)
}
