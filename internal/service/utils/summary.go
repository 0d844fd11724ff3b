package utils

import (
	"strings"

	"github.com/chamberhq/services-portal-api/internal/models"
)

const querySummaryMaxLength = 80

// BuildESGSummary builds the one-line listing summary for an ESG label
// application. Falls back to the localized service name when the sub-sector
// is missing.
func BuildESGSummary(ext *models.ESGExtension) string {
	if ext == nil || ext.SubSector == "" {
		return models.ServiceLabel(models.ServiceKindESGLabel).EN
	}
	return "ESG Label Application — " + ext.SubSector
}

// BuildKnowledgeSummary builds the one-line listing summary for a knowledge
// sharing request
func BuildKnowledgeSummary(ext *models.KnowledgeExtension) string {
	if ext == nil {
		return models.ServiceLabel(models.ServiceKindKnowledgeSharing).EN
	}

	switch ext.RequestType {
	case models.KnowledgeRequestSessionBooking:
		if ext.ProgramName != nil && *ext.ProgramName != "" {
			return "Session booking: " + *ext.ProgramName
		}
	case models.KnowledgeRequestTrainingQuery:
		if ext.QueryText != nil && *ext.QueryText != "" {
			return TruncateQuery(*ext.QueryText)
		}
	}

	return models.ServiceLabel(models.ServiceKindKnowledgeSharing).EN
}

// BuildDealSummary builds the one-line listing summary for a deal claim
func BuildDealSummary(ext *models.DealExtension) string {
	if ext == nil || ext.DealTitle == "" {
		return models.ServiceLabel(models.ServiceKindPromotionalDeal).EN
	}
	return "Deal claim: " + ext.DealTitle
}

// BuildLegacySummary builds the summary for a legacy record from its free-text
// description
func BuildLegacySummary(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.ServiceLabel(models.ServiceKindESGLabel).EN
	}
	return TruncateQuery(description)
}

// TruncateQuery caps free text at the listing summary length
func TruncateQuery(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= querySummaryMaxLength {
		return text
	}
	return string(runes[:querySummaryMaxLength])
}
