package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamberhq/services-portal-api/internal/models"
	"github.com/chamberhq/services-portal-api/internal/service"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRespondServiceError_TypedError(t *testing.T) {
	c, w := newTestContext()

	err := &service.Error{Code: models.ErrCodeCertificateExists, Message: "certificate already issued"}
	RespondServiceError(c, quietLogger(), err)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.ErrCodeCertificateExists, body.Code)
	assert.Equal(t, "certificate already issued", body.Message)
}

func TestRespondServiceError_WrappedTypedError(t *testing.T) {
	c, w := newTestContext()

	inner := &service.Error{Code: models.ErrCodeApplicationNotFound, Message: "application not found: APP-1"}
	RespondServiceError(c, quietLogger(), errors.Join(inner))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondServiceError_UnknownError(t *testing.T) {
	c, w := newTestContext()

	RespondServiceError(c, quietLogger(), errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.ErrCodeInternalError, body.Code)
}
