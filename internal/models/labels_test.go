package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLegacyStatus(t *testing.T) {
	assert.Equal(t, StatusPendingInfo, NormalizeLegacyStatus(LegacyStatusCorrections))
	assert.Equal(t, StatusApproved, NormalizeLegacyStatus(StatusApproved))
	assert.Equal(t, StatusSubmitted, NormalizeLegacyStatus(StatusSubmitted))
}

func TestIsValidServiceKind(t *testing.T) {
	for _, kind := range AllServiceKinds() {
		assert.True(t, IsValidServiceKind(string(kind)))
	}
	assert.False(t, IsValidServiceKind("vehicle_registration"))
	assert.False(t, IsValidServiceKind(""))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("SUBMITTED"))
	assert.True(t, IsValidStatus("CLOSED"))
	assert.False(t, IsValidStatus("CORRECTIONS_REQUESTED"))
	assert.False(t, IsValidStatus("submitted"))
}

func TestCertificateBearing(t *testing.T) {
	assert.True(t, ServiceKindESGLabel.CertificateBearing())
	assert.False(t, ServiceKindKnowledgeSharing.CertificateBearing())
	assert.False(t, ServiceKindPromotionalDeal.CertificateBearing())
}

func TestResolveDepartment(t *testing.T) {
	assert.Equal(t, []ServiceKind{ServiceKindESGLabel}, ResolveDepartment(DepartmentSustainability))
	assert.Equal(t, []ServiceKind{ServiceKindKnowledgeSharing}, ResolveDepartment(DepartmentTraining))
	assert.Nil(t, ResolveDepartment(Department("finance")))
}

func TestStatusLabelRemapsLegacy(t *testing.T) {
	assert.Equal(t, "Pending Information", StatusLabel(LegacyStatusCorrections).EN)
	assert.Equal(t, "orange", StatusColor(LegacyStatusCorrections))
	assert.Equal(t, "green", StatusColor(StatusApproved))
}

func TestHTTPStatusForErrorCode(t *testing.T) {
	assert.Equal(t, 400, HTTPStatusForErrorCode(ErrCodeInvalidTransition))
	assert.Equal(t, 404, HTTPStatusForErrorCode(ErrCodeApplicationNotFound))
	assert.Equal(t, 409, HTTPStatusForErrorCode(ErrCodeCertificateExists))
	assert.Equal(t, 500, HTTPStatusForErrorCode("SOMETHING_ELSE"))
}
