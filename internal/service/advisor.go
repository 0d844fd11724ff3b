package service

import (
	"context"
	"fmt"

	"github.com/chamberhq/services-portal-api/internal/models"
)

// Advisor suggests a draft staff response for an application. The seam mirrors
// an external suggestion provider; the shipped implementation is canned text.
type Advisor interface {
	SuggestResponse(ctx context.Context, detail *models.ApplicationDetail) (string, error)
}

// CannedAdvisor produces templated suggestions from the application state
type CannedAdvisor struct{}

// NewCannedAdvisor creates a new canned advisor
func NewCannedAdvisor() *CannedAdvisor {
	return &CannedAdvisor{}
}

// SuggestResponse returns a templated draft keyed on service kind and status
func (a *CannedAdvisor) SuggestResponse(_ context.Context, detail *models.ApplicationDetail) (string, error) {
	greeting := fmt.Sprintf("Dear %s,\n\n", detail.ApplicantName)

	switch detail.Status {
	case models.StatusApproved:
		return greeting + fmt.Sprintf(
			"We are pleased to inform you that your %s application (%s) has been approved. "+
				"You will find the outcome documents attached to your application record.\n\nKind regards,\nChamber Services Team",
			detail.ServiceLabel.EN, detail.AppID), nil
	case models.StatusRejected:
		return greeting + fmt.Sprintf(
			"Thank you for your %s application (%s). After careful review we are unable to approve it at this time. "+
				"Please review the stated reason and feel free to submit a new application.\n\nKind regards,\nChamber Services Team",
			detail.ServiceLabel.EN, detail.AppID), nil
	case models.StatusPendingInfo:
		return greeting + fmt.Sprintf(
			"Your %s application (%s) requires additional information before review can continue. "+
				"Please provide the requested details through the portal.\n\nKind regards,\nChamber Services Team",
			detail.ServiceLabel.EN, detail.AppID), nil
	default:
		return greeting + fmt.Sprintf(
			"Thank you for your %s application (%s). It is currently being processed and we will update you shortly.\n\nKind regards,\nChamber Services Team",
			detail.ServiceLabel.EN, detail.AppID), nil
	}
}
