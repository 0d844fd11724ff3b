package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chamberhq/services-portal-api/internal/service"
	"github.com/chamberhq/services-portal-api/internal/utils"
)

// RespondServiceError maps a service-layer error to the API error envelope.
// Typed service errors carry their own code; anything else is surfaced as a
// generic 500 with the detail kept server-side.
func RespondServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var serr *service.Error
	if errors.As(err, &serr) {
		utils.SendErrorWithCode(c, serr.Code, serr.Message)
		return
	}

	logger.WithError(err).WithField("path", c.FullPath()).Error("Unhandled service error")
	utils.SendInternalServerError(c, "An unexpected error occurred", "")
}
