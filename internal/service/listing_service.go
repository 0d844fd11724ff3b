package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chamberhq/services-portal-api/internal/config"
	"github.com/chamberhq/services-portal-api/internal/dao"
	"github.com/chamberhq/services-portal-api/internal/models"
	serviceutils "github.com/chamberhq/services-portal-api/internal/service/utils"
	"github.com/chamberhq/services-portal-api/internal/sla"
	"github.com/chamberhq/services-portal-api/internal/workflow"
	"github.com/chamberhq/services-portal-api/pkg/utils"
)

// ListingService merges the current and legacy record families into one
// unified, filtered, paginated listing
type ListingService struct {
	applicationDAO *dao.ApplicationDAO
	esgDAO         *dao.ESGExtensionDAO
	knowledgeDAO   *dao.KnowledgeExtensionDAO
	dealDAO        *dao.DealExtensionDAO
	legacyDAO      *dao.LegacyDAO
	slaCfg         *config.SLAConfig
	logger         *logrus.Logger
}

// NewListingService creates a new listing service instance
func NewListingService(
	applicationDAO *dao.ApplicationDAO,
	esgDAO *dao.ESGExtensionDAO,
	knowledgeDAO *dao.KnowledgeExtensionDAO,
	dealDAO *dao.DealExtensionDAO,
	legacyDAO *dao.LegacyDAO,
	slaCfg *config.SLAConfig,
	logger *logrus.Logger,
) *ListingService {
	return &ListingService{
		applicationDAO: applicationDAO,
		esgDAO:         esgDAO,
		knowledgeDAO:   knowledgeDAO,
		dealDAO:        dealDAO,
		legacyDAO:      legacyDAO,
		slaCfg:         slaCfg,
		logger:         logger,
	}
}

// List produces the merged listing: both families fetched independently,
// legacy ids colliding with base ids dropped, rows mapped to the unified
// shape, then searched, sorted and paginated in memory over the merged set.
func (s *ListingService) List(ctx context.Context, filter *models.ListFilter) (*models.ListResponse, error) {
	normalizeFilter(filter)

	baseApps, err := s.applicationDAO.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	rows, err := s.buildBaseRows(ctx, baseApps)
	if err != nil {
		return nil, err
	}

	if includeLegacy(filter) {
		// Dedupe against the full identity-scoped id set, not the filtered
		// page: a status filter that excludes the base copy must not let the
		// migrated legacy twin back in
		ids, err := s.applicationDAO.ListIDs(ctx, filter.ApplicantEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to list application ids: %w", err)
		}
		baseIDs := make(map[string]bool, len(ids))
		for _, id := range ids {
			baseIDs[id] = true
		}

		legacyApps, err := s.legacyDAO.FindByFilter(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list legacy applications: %w", err)
		}

		for _, legacy := range legacyApps {
			// Migrated records exist in both families; the base copy wins
			if baseIDs[legacy.AppID] {
				continue
			}
			row := s.buildLegacyRow(&legacy)
			if !matchesStatusFilter(row.Status, filter.Statuses) {
				continue
			}
			rows = append(rows, row)
		}
	}

	if filter.Search != "" {
		rows = searchRows(rows, filter.Search)
	}

	sortRows(rows, filter.SortBy, filter.SortOrder)

	total := len(rows)
	limit := utils.ValidateLimit(filter.Limit)
	offset := utils.ValidateOffset(filter.Offset)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	page := rows[start:end]

	facets, err := s.buildFacets(ctx, filter.ApplicantEmail)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &models.ListResponse{
		Rows:        page,
		TotalCount:  total,
		Page:        offset/limit + 1,
		TotalPages:  totalPages,
		FacetCounts: *facets,
	}, nil
}

func normalizeFilter(filter *models.ListFilter) {
	filter.ApplicantEmail = strings.ToLower(strings.TrimSpace(filter.ApplicantEmail))

	// A department filter is shorthand for its service kinds
	if filter.Department != "" && len(filter.ServiceKinds) == 0 {
		kinds := models.ResolveDepartment(models.Department(filter.Department))
		for _, k := range kinds {
			filter.ServiceKinds = append(filter.ServiceKinds, string(k))
		}
	}

	valid := filter.ServiceKinds[:0]
	for _, k := range filter.ServiceKinds {
		if models.IsValidServiceKind(k) {
			valid = append(valid, k)
		}
	}
	filter.ServiceKinds = valid
}

// includeLegacy reports whether the legacy family can contribute rows under
// the current kind filter. Legacy records are all ESG label applications.
func includeLegacy(filter *models.ListFilter) bool {
	if len(filter.ServiceKinds) == 0 {
		return true
	}
	for _, k := range filter.ServiceKinds {
		if models.ServiceKind(k) == models.ServiceKindESGLabel {
			return true
		}
	}
	return false
}

func matchesStatusFilter(status models.Status, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if models.Status(s) == status {
			return true
		}
	}
	return false
}

func (s *ListingService) buildBaseRows(ctx context.Context, apps []models.Application) ([]models.ApplicationRow, error) {
	idsByKind := make(map[models.ServiceKind][]string)
	for _, app := range apps {
		idsByKind[app.ServiceKind] = append(idsByKind[app.ServiceKind], app.AppID)
	}

	esgExts, err := s.esgDAO.GetByAppIDs(ctx, idsByKind[models.ServiceKindESGLabel])
	if err != nil {
		return nil, err
	}
	knowledgeExts, err := s.knowledgeDAO.GetByAppIDs(ctx, idsByKind[models.ServiceKindKnowledgeSharing])
	if err != nil {
		return nil, err
	}
	dealExts, err := s.dealDAO.GetByAppIDs(ctx, idsByKind[models.ServiceKindPromotionalDeal])
	if err != nil {
		return nil, err
	}

	now := utils.MillisToTime(utils.GetCurrentTimeMillis())
	rows := make([]models.ApplicationRow, 0, len(apps))
	for _, app := range apps {
		var summary string
		switch app.ServiceKind {
		case models.ServiceKindESGLabel:
			ext, ok := esgExts[app.AppID]
			if ok {
				summary = serviceutils.BuildESGSummary(&ext)
			} else {
				summary = serviceutils.BuildESGSummary(nil)
			}
		case models.ServiceKindKnowledgeSharing:
			ext, ok := knowledgeExts[app.AppID]
			if ok {
				summary = serviceutils.BuildKnowledgeSummary(&ext)
			} else {
				summary = serviceutils.BuildKnowledgeSummary(nil)
			}
		case models.ServiceKindPromotionalDeal:
			ext, ok := dealExts[app.AppID]
			if ok {
				summary = serviceutils.BuildDealSummary(&ext)
			} else {
				summary = serviceutils.BuildDealSummary(nil)
			}
		}

		dept := models.DepartmentOf(app.ServiceKind)
		row := models.ApplicationRow{
			AppID:           app.AppID,
			ServiceKind:     app.ServiceKind,
			ServiceLabel:    models.ServiceLabel(app.ServiceKind),
			Department:      dept,
			DepartmentLabel: models.DepartmentLabel(dept),
			Status:          app.CurrentStatus,
			StatusLabel:     models.StatusLabel(app.CurrentStatus),
			StatusColor:     models.StatusColor(app.CurrentStatus),
			ApplicantName:   app.ApplicantName,
			ApplicantEmail:  app.ApplicantEmail,
			AssignedTo:      app.AssignedTo,
			SubmittedTime:   app.SubmittedTime,
			UpdatedTime:     app.UpdatedTime,
			Summary:         summary,
		}

		if workflow.IsOpen(app.CurrentStatus) {
			result := sla.Evaluate(utils.MillisToTime(app.SubmittedTime), s.slaCfg.DaysFor(string(app.ServiceKind)), now)
			row.SLA = slaIndicator(result)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s *ListingService) buildLegacyRow(legacy *models.LegacyApplication) models.ApplicationRow {
	status := models.NormalizeLegacyStatus(legacy.CurrentStatus)
	dept := models.DepartmentOf(models.ServiceKindESGLabel)

	row := models.ApplicationRow{
		AppID:           legacy.AppID,
		ServiceKind:     models.ServiceKindESGLabel,
		ServiceLabel:    models.ServiceLabel(models.ServiceKindESGLabel),
		Department:      dept,
		DepartmentLabel: models.DepartmentLabel(dept),
		Status:          status,
		StatusLabel:     models.StatusLabel(status),
		StatusColor:     models.StatusColor(status),
		ApplicantName:   legacy.ApplicantName,
		ApplicantEmail:  legacy.ApplicantEmail,
		SubmittedTime:   legacy.CreatedTime,
		UpdatedTime:     legacy.UpdatedTime,
		Summary:         serviceutils.BuildLegacySummary(legacy.Description),
		Legacy:          true,
	}

	if workflow.IsOpen(status) {
		now := utils.MillisToTime(utils.GetCurrentTimeMillis())
		result := sla.Evaluate(utils.MillisToTime(legacy.CreatedTime), s.slaCfg.DaysFor(string(models.ServiceKindESGLabel)), now)
		row.SLA = slaIndicator(result)
	}

	return row
}

func searchRows(rows []models.ApplicationRow, search string) []models.ApplicationRow {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return rows
	}

	matched := make([]models.ApplicationRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.AppID), needle) ||
			strings.Contains(strings.ToLower(row.ApplicantName), needle) ||
			strings.Contains(strings.ToLower(row.ApplicantEmail), needle) ||
			strings.Contains(strings.ToLower(row.Summary), needle) {
			matched = append(matched, row)
		}
	}

	return matched
}

// sortRows orders the merged set. Unknown sort keys fall back to submission
// time descending; ties keep base rows ahead of legacy rows.
func sortRows(rows []models.ApplicationRow, sortBy, sortOrder string) {
	ascending := strings.EqualFold(sortOrder, "asc")

	var less func(a, b *models.ApplicationRow) bool
	switch sortBy {
	case models.SortByStatus:
		less = func(a, b *models.ApplicationRow) bool { return a.Status < b.Status }
	case models.SortByApplicant:
		less = func(a, b *models.ApplicationRow) bool {
			return strings.ToLower(a.ApplicantName) < strings.ToLower(b.ApplicantName)
		}
	case models.SortByAppID:
		less = func(a, b *models.ApplicationRow) bool { return a.AppID < b.AppID }
	default:
		// Submission time; newest first unless asc is requested
		less = func(a, b *models.ApplicationRow) bool { return a.SubmittedTime < b.SubmittedTime }
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if ascending {
			return less(&rows[i], &rows[j])
		}
		return less(&rows[j], &rows[i])
	})
}

// buildFacets computes counts over the identity-scoped, otherwise-unfiltered
// set. Legacy records fold into esg_label with their statuses normalized.
func (s *ListingService) buildFacets(ctx context.Context, applicantEmail string) (*models.FacetCounts, error) {
	byKind, err := s.applicationDAO.CountByServiceKind(ctx, applicantEmail)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.applicationDAO.CountByStatus(ctx, applicantEmail)
	if err != nil {
		return nil, err
	}
	legacyByStatus, err := s.legacyDAO.CountByStatusNotInBase(ctx, applicantEmail)
	if err != nil {
		return nil, err
	}

	if byKind == nil {
		byKind = make(map[models.ServiceKind]int)
	}
	if byStatus == nil {
		byStatus = make(map[models.Status]int)
	}

	for rawStatus, count := range legacyByStatus {
		byKind[models.ServiceKindESGLabel] += count
		byStatus[models.NormalizeLegacyStatus(models.Status(rawStatus))] += count
	}

	byDept := make(map[models.Department]int)
	for kind, count := range byKind {
		byDept[models.DepartmentOf(kind)] += count
	}

	return &models.FacetCounts{
		ByServiceKind: byKind,
		ByStatus:      byStatus,
		ByDepartment:  byDept,
	}, nil
}
