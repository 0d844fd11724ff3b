package models

// Application represents the SP_APPLICATION table (base record, any service kind)
type Application struct {
	AppID           string      `db:"APP_ID" json:"appId"`
	ServiceKind     ServiceKind `db:"SERVICE_KIND" json:"serviceKind"`
	CurrentStatus   Status      `db:"CURRENT_STATUS" json:"currentStatus"`
	ApplicantName   string      `db:"APPLICANT_NAME" json:"applicantName"`
	ApplicantEmail  string      `db:"APPLICANT_EMAIL" json:"applicantEmail"`
	AssignedTo      *string     `db:"ASSIGNED_TO" json:"assignedTo,omitempty"`
	SubmittedTime   int64       `db:"SUBMITTED_TIME" json:"submittedTime"`
	UpdatedTime     int64       `db:"UPDATED_TIME" json:"updatedTime"`
	ReviewedTime    *int64      `db:"REVIEWED_TIME" json:"reviewedTime,omitempty"`
	ReviewedBy      *string     `db:"REVIEWED_BY" json:"reviewedBy,omitempty"`
	RejectionReason *string     `db:"REJECTION_REASON" json:"rejectionReason,omitempty"`
	InternalNotes   *string     `db:"INTERNAL_NOTES" json:"-"`
}

// ESGExtension represents the SP_ESG_EXTENSION table (1:1 with an esg_label application)
type ESGExtension struct {
	AppID          string `db:"APP_ID" json:"appId"`
	EnvProfile     JSON   `db:"ENV_PROFILE" json:"environmentalProfile,omitempty"`
	SocialProfile  JSON   `db:"SOCIAL_PROFILE" json:"socialProfile,omitempty"`
	GovProfile     JSON   `db:"GOV_PROFILE" json:"governanceProfile,omitempty"`
	SubSector      string `db:"SUB_SECTOR" json:"subSector"`
	TradeLicenseNo string `db:"TRADE_LICENSE_NO" json:"tradeLicenseNo"`
}

// Knowledge-sharing request types
const (
	KnowledgeRequestSessionBooking = "session_booking"
	KnowledgeRequestTrainingQuery  = "training_query"
)

// KnowledgeExtension represents the SP_KNOWLEDGE_EXTENSION table
type KnowledgeExtension struct {
	AppID         string  `db:"APP_ID" json:"appId"`
	RequestType   string  `db:"REQUEST_TYPE" json:"requestType"`
	ProgramID     *string `db:"PROGRAM_ID" json:"programId,omitempty"`
	ProgramName   *string `db:"PROGRAM_NAME" json:"programName,omitempty"`
	SessionDate   *int64  `db:"SESSION_DATE" json:"sessionDate,omitempty"`
	AttendeeCount *int    `db:"ATTENDEE_COUNT" json:"attendeeCount,omitempty"`
	QueryText     *string `db:"QUERY_TEXT" json:"queryText,omitempty"`
	StaffResponse *string `db:"STAFF_RESPONSE" json:"staffResponse,omitempty"`
	RespondedTime *int64  `db:"RESPONDED_TIME" json:"respondedTime,omitempty"`
}

// DealExtension represents the SP_DEAL_EXTENSION table
type DealExtension struct {
	AppID         string `db:"APP_ID" json:"appId"`
	DealID        string `db:"DEAL_ID" json:"dealId"`
	DealTitle     string `db:"DEAL_TITLE" json:"dealTitle"`
	VoucherCode   string `db:"VOUCHER_CODE" json:"voucherCode"`
	FulfilledTime *int64 `db:"FULFILLED_TIME" json:"fulfilledTime,omitempty"`
}

// Extension is the tagged payload attached 1:1 to an Application. Exactly one
// variant matching Kind is set; the service layer enforces this at intake.
type Extension struct {
	Kind      ServiceKind         `json:"kind"`
	ESG       *ESGExtension       `json:"esg,omitempty"`
	Knowledge *KnowledgeExtension `json:"knowledge,omitempty"`
	Deal      *DealExtension      `json:"deal,omitempty"`
}

// ApplicationCreateRequest is the intake payload for a new submission
type ApplicationCreateRequest struct {
	ServiceKind    string                  `json:"serviceKind" binding:"required"`
	ApplicantName  string                  `json:"applicantName" binding:"required"`
	ApplicantEmail string                  `json:"applicantEmail" binding:"required"`
	ESG            *ESGExtensionInput      `json:"esg,omitempty"`
	Knowledge      *KnowledgeRequestInput  `json:"knowledge,omitempty"`
	Deal           *DealClaimInput         `json:"deal,omitempty"`
}

// ESGExtensionInput carries the ESG-specific intake fields
type ESGExtensionInput struct {
	EnvProfile     JSON   `json:"environmentalProfile,omitempty"`
	SocialProfile  JSON   `json:"socialProfile,omitempty"`
	GovProfile     JSON   `json:"governanceProfile,omitempty"`
	SubSector      string `json:"subSector"`
	TradeLicenseNo string `json:"tradeLicenseNo"`
}

// KnowledgeRequestInput carries the knowledge-sharing intake fields
type KnowledgeRequestInput struct {
	RequestType   string  `json:"requestType" binding:"required"`
	ProgramID     *string `json:"programId,omitempty"`
	ProgramName   *string `json:"programName,omitempty"`
	SessionDate   *int64  `json:"sessionDate,omitempty"`
	AttendeeCount *int    `json:"attendeeCount,omitempty"`
	QueryText     *string `json:"queryText,omitempty"`
}

// DealClaimInput carries the promotional-deal intake fields
type DealClaimInput struct {
	DealID    string `json:"dealId" binding:"required"`
	DealTitle string `json:"dealTitle" binding:"required"`
}

// ApplicationUpdateRequest is the staff PATCH payload. Every field is optional;
// status and assignment changes are audited independently.
type ApplicationUpdateRequest struct {
	Status          string  `json:"status,omitempty"`
	AssignedTo      *string `json:"assignedTo,omitempty"`
	InternalNotes   *string `json:"internalNotes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	StaffResponse   *string `json:"staffResponse,omitempty"`
	DealFulfilled   *bool   `json:"dealFulfilled,omitempty"`
	Note            string  `json:"note,omitempty"`
}

// ApplicationDetail is the unified single-record view for base and legacy families
type ApplicationDetail struct {
	AppID           string          `json:"appId"`
	ServiceKind     ServiceKind     `json:"serviceKind"`
	ServiceLabel    Label           `json:"serviceLabel"`
	Department      Department      `json:"department"`
	DepartmentLabel Label           `json:"departmentLabel"`
	Status          Status          `json:"status"`
	StatusLabel     Label           `json:"statusLabel"`
	StatusColor     string          `json:"statusColor"`
	ApplicantName   string          `json:"applicantName"`
	ApplicantEmail  string          `json:"applicantEmail"`
	AssignedTo      *string         `json:"assignedTo,omitempty"`
	SubmittedTime   int64           `json:"submittedTime"`
	UpdatedTime     int64           `json:"updatedTime"`
	ReviewedTime    *int64          `json:"reviewedTime,omitempty"`
	ReviewedBy      *string         `json:"reviewedBy,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	InternalNotes   *string         `json:"internalNotes,omitempty"`
	Extension       *Extension      `json:"extension,omitempty"`
	Certificate     *Certificate    `json:"certificate,omitempty"`
	SLA             *SLAIndicator   `json:"sla,omitempty"`
	Activity        []ActivityEntry `json:"activity"`
	Legacy          bool            `json:"legacy"`
	Description     *string         `json:"description,omitempty"`
}

// SLAIndicator is the per-record SLA signal carried on detail and row shapes
type SLAIndicator struct {
	DaysElapsed   int    `json:"daysElapsed"`
	DaysRemaining *int   `json:"daysRemaining,omitempty"`
	OverdueDays   *int   `json:"overdueDays,omitempty"`
	Bucket        string `json:"bucket"`
	Label         string `json:"label"`
}
