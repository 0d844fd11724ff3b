package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func notes(s string) *string { return &s }

func TestInternalOnly(t *testing.T) {
	entry := ActivityEntry{Action: "Internal notes updated"}
	assert.True(t, entry.InternalOnly())

	entry = ActivityEntry{Action: "Status changed from SUBMITTED to UNDER_REVIEW"}
	assert.False(t, entry.InternalOnly())

	entry = ActivityEntry{Action: "Status changed from UNDER_REVIEW to APPROVED", Notes: notes("internal escalation")}
	assert.True(t, entry.InternalOnly())
}

func TestFilterApplicantVisible(t *testing.T) {
	entries := []ActivityEntry{
		{LogID: "1", Action: "Application submitted"},
		{LogID: "2", Action: "Internal notes updated"},
		{LogID: "3", Action: "Assigned to reviewer@chamber"},
		{LogID: "4", Action: "Status changed from SUBMITTED to UNDER_REVIEW", Notes: notes("flagged internally")},
	}

	visible := FilterApplicantVisible(entries)
	assert.Len(t, visible, 2)
	assert.Equal(t, "1", visible[0].LogID)
	assert.Equal(t, "3", visible[1].LogID)
}
