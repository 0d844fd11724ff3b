package models

import "strings"

// ActivityEntry represents the SP_ACTIVITY_LOG table. Entries are append-only;
// service kind and applicant name are denormalized so the global feed renders
// without a join.
type ActivityEntry struct {
	LogID         string      `db:"LOG_ID" json:"logId"`
	AppID         string      `db:"APP_ID" json:"appId"`
	ServiceKind   ServiceKind `db:"SERVICE_KIND" json:"serviceKind"`
	ApplicantName string      `db:"APPLICANT_NAME" json:"applicantName"`
	Action        string      `db:"ACTION" json:"action"`
	Actor         string      `db:"ACTOR" json:"actor"`
	Notes         *string     `db:"NOTES" json:"notes,omitempty"`
	ActionTime    int64       `db:"ACTION_TIME" json:"actionTime"`
}

// InternalOnly reports whether the entry carries the internal marker and must
// be withheld from applicant-facing views.
func (e *ActivityEntry) InternalOnly() bool {
	if strings.Contains(strings.ToLower(e.Action), "internal") {
		return true
	}
	if e.Notes != nil && strings.Contains(strings.ToLower(*e.Notes), "internal") {
		return true
	}
	return false
}

// FilterApplicantVisible returns the entries an applicant is allowed to see
func FilterApplicantVisible(entries []ActivityEntry) []ActivityEntry {
	visible := make([]ActivityEntry, 0, len(entries))
	for _, e := range entries {
		if !e.InternalOnly() {
			visible = append(visible, e)
		}
	}
	return visible
}
