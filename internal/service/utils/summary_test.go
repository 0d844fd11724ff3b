package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chamberhq/services-portal-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildESGSummary(t *testing.T) {
	ext := &models.ESGExtension{AppID: "APP-1", SubSector: "Food Processing"}
	assert.Equal(t, "ESG Label Application — Food Processing", BuildESGSummary(ext))

	assert.Equal(t, "ESG Label Certification", BuildESGSummary(nil))
	assert.Equal(t, "ESG Label Certification", BuildESGSummary(&models.ESGExtension{AppID: "APP-1"}))
}

func TestBuildKnowledgeSummary_SessionBooking(t *testing.T) {
	ext := &models.KnowledgeExtension{
		RequestType: models.KnowledgeRequestSessionBooking,
		ProgramName: strPtr("Export Readiness"),
	}
	assert.Equal(t, "Session booking: Export Readiness", BuildKnowledgeSummary(ext))
}

func TestBuildKnowledgeSummary_TrainingQueryTruncated(t *testing.T) {
	long := strings.Repeat("a", 120)
	ext := &models.KnowledgeExtension{
		RequestType: models.KnowledgeRequestTrainingQuery,
		QueryText:   strPtr(long),
	}
	summary := BuildKnowledgeSummary(ext)
	assert.Len(t, []rune(summary), 80)
	assert.Equal(t, strings.Repeat("a", 80), summary)
}

func TestBuildKnowledgeSummary_Fallback(t *testing.T) {
	assert.Equal(t, "Knowledge Sharing & Training", BuildKnowledgeSummary(nil))
	ext := &models.KnowledgeExtension{RequestType: models.KnowledgeRequestSessionBooking}
	assert.Equal(t, "Knowledge Sharing & Training", BuildKnowledgeSummary(ext))
}

func TestBuildDealSummary(t *testing.T) {
	ext := &models.DealExtension{DealID: "DL-1", DealTitle: "Two for one"}
	assert.Equal(t, "Deal claim: Two for one", BuildDealSummary(ext))
	assert.Equal(t, "Member Promotional Deals", BuildDealSummary(nil))
}

func TestBuildLegacySummary(t *testing.T) {
	assert.Equal(t, "solar audit", BuildLegacySummary("  solar audit  "))
	assert.Equal(t, "ESG Label Certification", BuildLegacySummary("   "))
}

func TestTruncateQuery_MultibyteSafe(t *testing.T) {
	text := strings.Repeat("م", 100)
	truncated := TruncateQuery(text)
	assert.Len(t, []rune(truncated), 80)
}
