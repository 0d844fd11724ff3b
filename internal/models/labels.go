package models

// ServiceKind identifies the chamber service an application belongs to.
// The enumeration is closed; unknown kinds are rejected at intake.
type ServiceKind string

const (
	ServiceKindESGLabel         ServiceKind = "esg_label"
	ServiceKindKnowledgeSharing ServiceKind = "knowledge_sharing"
	ServiceKindPromotionalDeal  ServiceKind = "promotional_deal"
)

// AllServiceKinds returns the closed set of service kinds
func AllServiceKinds() []ServiceKind {
	return []ServiceKind{ServiceKindESGLabel, ServiceKindKnowledgeSharing, ServiceKindPromotionalDeal}
}

// IsValidServiceKind checks membership in the closed enumeration
func IsValidServiceKind(kind string) bool {
	switch ServiceKind(kind) {
	case ServiceKindESGLabel, ServiceKindKnowledgeSharing, ServiceKindPromotionalDeal:
		return true
	}
	return false
}

// CertificateBearing reports whether an approval of this kind issues a certificate
func (k ServiceKind) CertificateBearing() bool {
	return k == ServiceKindESGLabel
}

// Status is the lifecycle status of a base-model application
type Status string

const (
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusPendingInfo Status = "PENDING_INFO"
	StatusClosed      Status = "CLOSED"
)

// LegacyStatusCorrections is the legacy-only fifth status; the merge layer
// remaps it to PENDING_INFO wherever both families are presented together.
const LegacyStatusCorrections Status = "CORRECTIONS_REQUESTED"

// IsValidStatus checks membership in the base-model status set
func IsValidStatus(status string) bool {
	switch Status(status) {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected,
		StatusPendingInfo, StatusClosed:
		return true
	}
	return false
}

// NormalizeLegacyStatus maps a legacy status onto the base-model status set
func NormalizeLegacyStatus(status Status) Status {
	if status == LegacyStatusCorrections {
		return StatusPendingInfo
	}
	return status
}

// Department groups service kinds the way the portal's filter UI does
type Department string

const (
	DepartmentSustainability Department = "sustainability"
	DepartmentTraining       Department = "training"
	DepartmentCommercial     Department = "commercial"
)

var departmentKinds = map[Department][]ServiceKind{
	DepartmentSustainability: {ServiceKindESGLabel},
	DepartmentTraining:       {ServiceKindKnowledgeSharing},
	DepartmentCommercial:     {ServiceKindPromotionalDeal},
}

// ResolveDepartment returns the service kinds a department filter expands to
func ResolveDepartment(dept Department) []ServiceKind {
	return departmentKinds[dept]
}

// Label carries the bilingual display strings used across the portal
type Label struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

var serviceLabels = map[ServiceKind]Label{
	ServiceKindESGLabel:         {EN: "ESG Label Certification", AR: "شهادة الملصق البيئي والاجتماعي والحوكمة"},
	ServiceKindKnowledgeSharing: {EN: "Knowledge Sharing & Training", AR: "مشاركة المعرفة والتدريب"},
	ServiceKindPromotionalDeal:  {EN: "Member Promotional Deals", AR: "العروض الترويجية للأعضاء"},
}

var departmentLabels = map[Department]Label{
	DepartmentSustainability: {EN: "Sustainability Department", AR: "إدارة الاستدامة"},
	DepartmentTraining:       {EN: "Training & Development", AR: "التدريب والتطوير"},
	DepartmentCommercial:     {EN: "Commercial Affairs", AR: "الشؤون التجارية"},
}

var serviceDepartments = map[ServiceKind]Department{
	ServiceKindESGLabel:         DepartmentSustainability,
	ServiceKindKnowledgeSharing: DepartmentTraining,
	ServiceKindPromotionalDeal:  DepartmentCommercial,
}

var statusLabels = map[Status]Label{
	StatusSubmitted:   {EN: "Submitted", AR: "مُقدَّم"},
	StatusUnderReview: {EN: "Under Review", AR: "قيد المراجعة"},
	StatusApproved:    {EN: "Approved", AR: "معتمد"},
	StatusRejected:    {EN: "Rejected", AR: "مرفوض"},
	StatusPendingInfo: {EN: "Pending Information", AR: "بانتظار معلومات"},
	StatusClosed:      {EN: "Closed", AR: "مغلق"},
}

// statusColors are the badge colors the dashboard renders per status
var statusColors = map[Status]string{
	StatusSubmitted:   "blue",
	StatusUnderReview: "amber",
	StatusApproved:    "green",
	StatusRejected:    "red",
	StatusPendingInfo: "orange",
	StatusClosed:      "gray",
}

// ServiceLabel returns the bilingual label for a service kind
func ServiceLabel(kind ServiceKind) Label {
	return serviceLabels[kind]
}

// DepartmentOf returns the department owning a service kind
func DepartmentOf(kind ServiceKind) Department {
	return serviceDepartments[kind]
}

// DepartmentLabel returns the bilingual label for a department
func DepartmentLabel(dept Department) Label {
	return departmentLabels[dept]
}

// StatusLabel returns the bilingual label for a status, remapping legacy statuses first
func StatusLabel(status Status) Label {
	return statusLabels[NormalizeLegacyStatus(status)]
}

// StatusColor returns the display color for a status, remapping legacy statuses first
func StatusColor(status Status) string {
	return statusColors[NormalizeLegacyStatus(status)]
}
