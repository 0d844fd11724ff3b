package models

// LegacyApplication represents the deprecated SP_LEGACY_ESG_APPLICATION table.
// It predates the polymorphic model and only ever held ESG label requests.
type LegacyApplication struct {
	AppID          string `db:"APP_ID" json:"appId"`
	ApplicantName  string `db:"APPLICANT_NAME" json:"applicantName"`
	ApplicantEmail string `db:"APPLICANT_EMAIL" json:"applicantEmail"`
	Description    string `db:"DESCRIPTION" json:"description"`
	CurrentStatus  Status `db:"CURRENT_STATUS" json:"currentStatus"`
	EnvProfile     JSON   `db:"ENV_PROFILE" json:"environmentalProfile,omitempty"`
	SocialProfile  JSON   `db:"SOCIAL_PROFILE" json:"socialProfile,omitempty"`
	GovProfile     JSON   `db:"GOV_PROFILE" json:"governanceProfile,omitempty"`
	CreatedTime    int64  `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime    int64  `db:"UPDATED_TIME" json:"updatedTime"`
}

// Legacy review note author kinds
const (
	NoteAuthorStaff     = "staff"
	NoteAuthorApplicant = "applicant"
)

// LegacyReviewNote represents the SP_LEGACY_REVIEW_NOTE table, the legacy
// counterpart of the activity log
type LegacyReviewNote struct {
	NoteID      string `db:"NOTE_ID" json:"noteId"`
	AppID       string `db:"APP_ID" json:"appId"`
	NoteText    string `db:"NOTE_TEXT" json:"noteText"`
	AuthorKind  string `db:"AUTHOR_KIND" json:"authorKind"`
	CreatedTime int64  `db:"CREATED_TIME" json:"createdTime"`
}
