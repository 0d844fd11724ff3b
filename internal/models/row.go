package models

// ApplicationRow is the unified listing shape produced by the merge layer.
// Both record families are mapped into it; nothing downstream sees the split.
type ApplicationRow struct {
	AppID           string        `json:"appId"`
	ServiceKind     ServiceKind   `json:"serviceKind"`
	ServiceLabel    Label         `json:"serviceLabel"`
	Department      Department    `json:"department"`
	DepartmentLabel Label         `json:"departmentLabel"`
	Status          Status        `json:"status"`
	StatusLabel     Label         `json:"statusLabel"`
	StatusColor     string        `json:"statusColor"`
	ApplicantName   string        `json:"applicantName"`
	ApplicantEmail  string        `json:"applicantEmail"`
	AssignedTo      *string       `json:"assignedTo,omitempty"`
	SubmittedTime   int64         `json:"submittedTime"`
	UpdatedTime     int64         `json:"updatedTime"`
	SLA             *SLAIndicator `json:"sla,omitempty"`
	Summary         string        `json:"summary"`
	Legacy          bool          `json:"legacy"`
}

// ListFilter carries the merged-listing query parameters
type ListFilter struct {
	ApplicantEmail string   `form:"applicantEmail"`
	ServiceKinds   []string `form:"serviceKinds"`
	Statuses       []string `form:"statuses"`
	Department     string   `form:"department"`
	FromTime       *int64   `form:"fromTime"`
	ToTime         *int64   `form:"toTime"`
	Search         string   `form:"search"`
	SortBy         string   `form:"sortBy"`
	SortOrder      string   `form:"sortOrder"`
	Limit          int      `form:"limit"`
	Offset         int      `form:"offset"`
}

// Allowed sort keys; anything else falls back to submission time descending
const (
	SortBySubmittedTime = "submittedTime"
	SortByStatus        = "status"
	SortByApplicant     = "applicant"
	SortByAppID         = "id"
)

// FacetCounts are computed over the identity-scoped, otherwise-unfiltered set
// so the filter UI can show counts for unselected options
type FacetCounts struct {
	ByServiceKind map[ServiceKind]int `json:"byServiceKind"`
	ByStatus      map[Status]int      `json:"byStatus"`
	ByDepartment  map[Department]int  `json:"byDepartment"`
}

// ListResponse is the merged listing payload
type ListResponse struct {
	Rows        []ApplicationRow `json:"rows"`
	TotalCount  int              `json:"totalCount"`
	Page        int              `json:"page"`
	TotalPages  int              `json:"totalPages"`
	FacetCounts FacetCounts      `json:"facetCounts"`
}

// StatsResponse is the operations dashboard tile payload
type StatsResponse struct {
	TotalOpen            int     `json:"totalOpen"`
	PendingReview        int     `json:"pendingReview"`
	ResolvedToday        int     `json:"resolvedToday"`
	AvgResolutionDays    float64 `json:"avgResolutionDays"`
	AvgResolutionDisplay string  `json:"avgResolutionDisplay"`
	AgingBucket          string  `json:"agingBucket"`
}

// ActivityFeedResponse is the paginated global ledger feed
type ActivityFeedResponse struct {
	Entries []ActivityEntry `json:"entries"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}
