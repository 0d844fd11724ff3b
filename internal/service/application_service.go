package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chamberhq/services-portal-api/internal/config"
	"github.com/chamberhq/services-portal-api/internal/dao"
	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/metrics"
	"github.com/chamberhq/services-portal-api/internal/models"
	"github.com/chamberhq/services-portal-api/internal/sla"
	"github.com/chamberhq/services-portal-api/internal/workflow"
	"github.com/chamberhq/services-portal-api/pkg/utils"
)

const trainingQueryMinLength = 20

// ApplicationService handles business logic for the application lifecycle
type ApplicationService struct {
	applicationDAO *dao.ApplicationDAO
	esgDAO         *dao.ESGExtensionDAO
	knowledgeDAO   *dao.KnowledgeExtensionDAO
	dealDAO        *dao.DealExtensionDAO
	legacyDAO      *dao.LegacyDAO
	certificateDAO *dao.CertificateDAO
	activityLogDAO *dao.ActivityLogDAO
	slaCfg         *config.SLAConfig
	db             *database.DB
	logger         *logrus.Logger
	metrics        *metrics.Metrics
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	applicationDAO *dao.ApplicationDAO,
	esgDAO *dao.ESGExtensionDAO,
	knowledgeDAO *dao.KnowledgeExtensionDAO,
	dealDAO *dao.DealExtensionDAO,
	legacyDAO *dao.LegacyDAO,
	certificateDAO *dao.CertificateDAO,
	activityLogDAO *dao.ActivityLogDAO,
	slaCfg *config.SLAConfig,
	db *database.DB,
	logger *logrus.Logger,
	m *metrics.Metrics,
) *ApplicationService {
	return &ApplicationService{
		applicationDAO: applicationDAO,
		esgDAO:         esgDAO,
		knowledgeDAO:   knowledgeDAO,
		dealDAO:        dealDAO,
		legacyDAO:      legacyDAO,
		certificateDAO: certificateDAO,
		activityLogDAO: activityLogDAO,
		slaCfg:         slaCfg,
		db:             db,
		logger:         logger,
		metrics:        m,
	}
}

// CreateApplication validates the intake payload and creates the base record
// and its extension row in one transaction. The submission ledger entry is
// appended after commit.
func (s *ApplicationService) CreateApplication(ctx context.Context, request *models.ApplicationCreateRequest) (*models.ApplicationDetail, error) {
	if err := s.validateCreateRequest(request); err != nil {
		return nil, err
	}

	now := utils.GetCurrentTimeMillis()
	app := &models.Application{
		AppID:          utils.GenerateApplicationID(),
		ServiceKind:    models.ServiceKind(request.ServiceKind),
		CurrentStatus:  models.StatusSubmitted,
		ApplicantName:  utils.SanitizeString(request.ApplicantName),
		ApplicantEmail: strings.ToLower(strings.TrimSpace(request.ApplicantEmail)),
		SubmittedTime:  now,
		UpdatedTime:    now,
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.applicationDAO.CreateWithTx(ctx, tx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	if err := s.createExtensionWithTx(ctx, tx, app, request); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"app_id":       app.AppID,
		"service_kind": app.ServiceKind,
	}).Info("Application created")

	s.metrics.IncrementApplicationsCreated(string(app.ServiceKind))
	s.appendLedger(ctx, app.AppID, app.ServiceKind, app.ApplicantName, "Application submitted", app.ApplicantEmail, nil)

	return s.GetApplication(ctx, app.AppID, "")
}

func (s *ApplicationService) validateCreateRequest(request *models.ApplicationCreateRequest) error {
	if !models.IsValidServiceKind(request.ServiceKind) {
		return newError(models.ErrCodeValidationError, "invalid service kind: %s", request.ServiceKind)
	}
	if err := utils.ValidateRequired("applicantName", request.ApplicantName); err != nil {
		return newError(models.ErrCodeValidationError, "%s", err.Error())
	}
	if err := utils.ValidateEmail(request.ApplicantEmail); err != nil {
		return newError(models.ErrCodeValidationError, "%s", err.Error())
	}

	switch models.ServiceKind(request.ServiceKind) {
	case models.ServiceKindESGLabel:
		if request.ESG == nil {
			return newError(models.ErrCodeValidationError, "esg payload is required for esg_label applications")
		}
		if err := utils.ValidateRequired("subSector", request.ESG.SubSector); err != nil {
			return newError(models.ErrCodeValidationError, "%s", err.Error())
		}
		if err := utils.ValidateRequired("tradeLicenseNo", request.ESG.TradeLicenseNo); err != nil {
			return newError(models.ErrCodeValidationError, "%s", err.Error())
		}
	case models.ServiceKindKnowledgeSharing:
		if request.Knowledge == nil {
			return newError(models.ErrCodeValidationError, "knowledge payload is required for knowledge_sharing applications")
		}
		switch request.Knowledge.RequestType {
		case models.KnowledgeRequestSessionBooking:
			if request.Knowledge.ProgramID == nil || *request.Knowledge.ProgramID == "" {
				return newError(models.ErrCodeValidationError, "programId is required for session bookings")
			}
			if request.Knowledge.ProgramName == nil || *request.Knowledge.ProgramName == "" {
				return newError(models.ErrCodeValidationError, "programName is required for session bookings")
			}
		case models.KnowledgeRequestTrainingQuery:
			if request.Knowledge.QueryText == nil {
				return newError(models.ErrCodeValidationError, "queryText is required for training queries")
			}
			if err := utils.ValidateMinLength("queryText", strings.TrimSpace(*request.Knowledge.QueryText), trainingQueryMinLength); err != nil {
				return newError(models.ErrCodeValidationError, "%s", err.Error())
			}
		default:
			return newError(models.ErrCodeValidationError, "invalid request type: %s", request.Knowledge.RequestType)
		}
	case models.ServiceKindPromotionalDeal:
		if request.Deal == nil {
			return newError(models.ErrCodeValidationError, "deal payload is required for promotional_deal applications")
		}
		if err := utils.ValidateRequired("dealId", request.Deal.DealID); err != nil {
			return newError(models.ErrCodeValidationError, "%s", err.Error())
		}
		if err := utils.ValidateRequired("dealTitle", request.Deal.DealTitle); err != nil {
			return newError(models.ErrCodeValidationError, "%s", err.Error())
		}
	}

	return nil
}

func (s *ApplicationService) createExtensionWithTx(ctx context.Context, tx *database.Transaction, app *models.Application, request *models.ApplicationCreateRequest) error {
	switch app.ServiceKind {
	case models.ServiceKindESGLabel:
		ext := &models.ESGExtension{
			AppID:          app.AppID,
			EnvProfile:     request.ESG.EnvProfile,
			SocialProfile:  request.ESG.SocialProfile,
			GovProfile:     request.ESG.GovProfile,
			SubSector:      request.ESG.SubSector,
			TradeLicenseNo: request.ESG.TradeLicenseNo,
		}
		if err := s.esgDAO.CreateWithTx(ctx, tx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	case models.ServiceKindKnowledgeSharing:
		ext := &models.KnowledgeExtension{
			AppID:         app.AppID,
			RequestType:   request.Knowledge.RequestType,
			ProgramID:     request.Knowledge.ProgramID,
			ProgramName:   request.Knowledge.ProgramName,
			SessionDate:   request.Knowledge.SessionDate,
			AttendeeCount: request.Knowledge.AttendeeCount,
			QueryText:     request.Knowledge.QueryText,
		}
		if err := s.knowledgeDAO.CreateWithTx(ctx, tx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	case models.ServiceKindPromotionalDeal:
		ext := &models.DealExtension{
			AppID:       app.AppID,
			DealID:      request.Deal.DealID,
			DealTitle:   request.Deal.DealTitle,
			VoucherCode: utils.GenerateVoucherCode(),
		}
		if err := s.dealDAO.CreateWithTx(ctx, tx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	return nil
}

// GetApplication retrieves the unified detail view for a base or legacy
// record. A non-empty applicantEmail scopes the view to that applicant:
// ownership is enforced and internal material is withheld.
func (s *ApplicationService) GetApplication(ctx context.Context, appID, applicantEmail string) (*models.ApplicationDetail, error) {
	if err := utils.ValidateApplicationID(appID); err != nil {
		return nil, newError(models.ErrCodeValidationError, "%s", err.Error())
	}

	app, err := s.applicationDAO.GetByID(ctx, appID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return s.getLegacyDetail(ctx, appID, applicantEmail)
		}
		return nil, fmt.Errorf("failed to retrieve application: %w", err)
	}

	applicantView := applicantEmail != ""
	if applicantView && !strings.EqualFold(app.ApplicantEmail, applicantEmail) {
		return nil, newError(models.ErrCodeApplicationNotFound, "application not found: %s", appID)
	}

	detail := s.buildBaseDetail(app)

	if ext, err := s.loadExtension(ctx, app); err == nil {
		detail.Extension = ext
	}

	if app.ServiceKind.CertificateBearing() {
		if cert, err := s.certificateDAO.GetByAppID(ctx, appID); err == nil {
			detail.Certificate = cert
		}
	}

	activity, err := s.activityLogDAO.GetByAppID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activity: %w", err)
	}

	if applicantView {
		detail.InternalNotes = nil
		activity = models.FilterApplicantVisible(activity)
	} else {
		detail.InternalNotes = app.InternalNotes
	}
	detail.Activity = activity

	return detail, nil
}

func (s *ApplicationService) getLegacyDetail(ctx context.Context, appID, applicantEmail string) (*models.ApplicationDetail, error) {
	legacy, err := s.legacyDAO.GetByID(ctx, appID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, newError(models.ErrCodeApplicationNotFound, "application not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to retrieve legacy application: %w", err)
	}

	applicantView := applicantEmail != ""
	if applicantView && !strings.EqualFold(legacy.ApplicantEmail, applicantEmail) {
		return nil, newError(models.ErrCodeApplicationNotFound, "application not found: %s", appID)
	}

	status := models.NormalizeLegacyStatus(legacy.CurrentStatus)
	detail := &models.ApplicationDetail{
		AppID:           legacy.AppID,
		ServiceKind:     models.ServiceKindESGLabel,
		ServiceLabel:    models.ServiceLabel(models.ServiceKindESGLabel),
		Department:      models.DepartmentOf(models.ServiceKindESGLabel),
		DepartmentLabel: models.DepartmentLabel(models.DepartmentOf(models.ServiceKindESGLabel)),
		Status:          status,
		StatusLabel:     models.StatusLabel(status),
		StatusColor:     models.StatusColor(status),
		ApplicantName:   legacy.ApplicantName,
		ApplicantEmail:  legacy.ApplicantEmail,
		SubmittedTime:   legacy.CreatedTime,
		UpdatedTime:     legacy.UpdatedTime,
		Legacy:          true,
		Description:     &legacy.Description,
		Extension: &models.Extension{
			Kind: models.ServiceKindESGLabel,
			ESG: &models.ESGExtension{
				AppID:         legacy.AppID,
				EnvProfile:    legacy.EnvProfile,
				SocialProfile: legacy.SocialProfile,
				GovProfile:    legacy.GovProfile,
			},
		},
	}

	if workflow.IsOpen(status) {
		result := sla.Evaluate(utils.MillisToTime(legacy.CreatedTime), s.slaCfg.DaysFor(string(models.ServiceKindESGLabel)), utils.MillisToTime(utils.GetCurrentTimeMillis()))
		detail.SLA = slaIndicator(result)
	}

	if cert, err := s.certificateDAO.GetByAppID(ctx, appID); err == nil {
		detail.Certificate = cert
	}

	activity, err := s.legacyActivity(ctx, legacy)
	if err != nil {
		return nil, err
	}
	if applicantView {
		activity = models.FilterApplicantVisible(activity)
	}
	detail.Activity = activity

	return detail, nil
}

// legacyActivity merges ledger entries with the legacy review notes so the
// detail view shows one chronological history
func (s *ApplicationService) legacyActivity(ctx context.Context, legacy *models.LegacyApplication) ([]models.ActivityEntry, error) {
	entries, err := s.activityLogDAO.GetByAppID(ctx, legacy.AppID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activity: %w", err)
	}

	notes, err := s.legacyDAO.GetReviewNotes(ctx, legacy.AppID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve review notes: %w", err)
	}

	for _, note := range notes {
		noteText := note.NoteText
		actor := note.AuthorKind
		if note.AuthorKind == models.NoteAuthorApplicant {
			actor = legacy.ApplicantEmail
		}
		entries = append(entries, models.ActivityEntry{
			LogID:         note.NoteID,
			AppID:         note.AppID,
			ServiceKind:   models.ServiceKindESGLabel,
			ApplicantName: legacy.ApplicantName,
			Action:        "Review note added",
			Actor:         actor,
			Notes:         &noteText,
			ActionTime:    note.CreatedTime,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ActionTime > entries[j].ActionTime
	})

	return entries, nil
}

// UpdateApplication applies a staff mutation: status transition, assignment,
// internal notes, rejection reason or staff response. Each real change yields
// its own ledger entry after the transaction commits.
func (s *ApplicationService) UpdateApplication(ctx context.Context, appID string, request *models.ApplicationUpdateRequest, actor string) (*models.ApplicationDetail, error) {
	if err := utils.ValidateApplicationID(appID); err != nil {
		return nil, newError(models.ErrCodeValidationError, "%s", err.Error())
	}
	if err := utils.ValidateActor(actor); err != nil {
		return nil, newError(models.ErrCodeValidationError, "%s", err.Error())
	}
	if request.Status != "" && !models.IsValidStatus(request.Status) {
		return nil, newError(models.ErrCodeValidationError, "invalid status: %s", request.Status)
	}

	exists, err := s.applicationDAO.Exists(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to check application existence: %w", err)
	}
	if !exists {
		return s.updateLegacyApplication(ctx, appID, request, actor)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	app, err := s.applicationDAO.GetByIDWithTx(ctx, tx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve application: %w", err)
	}

	previousStatus := app.CurrentStatus
	requestedStatus := models.Status(request.Status)
	statusChanged := request.Status != "" && requestedStatus != previousStatus

	if statusChanged {
		if err := workflow.Validate(previousStatus, requestedStatus); err != nil {
			var terr *workflow.TransitionError
			if errors.As(err, &terr) {
				s.metrics.IncrementTransition(string(previousStatus), string(requestedStatus), "rejected")
				return nil, newError(models.ErrCodeInvalidTransition, "%s", terr.Error())
			}
			return nil, err
		}
		if requestedStatus == models.StatusRejected && request.RejectionReason == nil && app.RejectionReason == nil {
			return nil, newError(models.ErrCodeValidationError, "rejectionReason is required when rejecting")
		}
	}

	now := utils.GetCurrentTimeMillis()
	updated := *app
	assignmentChanged := false
	notesChanged := false
	reasonChanged := false
	responseRecorded := false
	fulfillmentRecorded := false

	var noteText *string
	if request.Note != "" {
		note := request.Note
		noteText = &note
	}

	if request.AssignedTo != nil && !equalPtr(request.AssignedTo, app.AssignedTo) {
		updated.AssignedTo = request.AssignedTo
		assignmentChanged = true
	}
	if request.InternalNotes != nil && !equalPtr(request.InternalNotes, app.InternalNotes) {
		updated.InternalNotes = request.InternalNotes
		notesChanged = true
	}
	if request.RejectionReason != nil && !equalPtr(request.RejectionReason, app.RejectionReason) {
		updated.RejectionReason = request.RejectionReason
		reasonChanged = true
	}

	if statusChanged {
		updated.CurrentStatus = requestedStatus
		// Review stamp is written once, on first entry into a terminal status
		if workflow.IsTerminal(requestedStatus) && app.ReviewedTime == nil {
			updated.ReviewedTime = &now
			updated.ReviewedBy = &actor
		}
	}

	changed := statusChanged || assignmentChanged || notesChanged || reasonChanged
	if request.StaffResponse != nil && app.ServiceKind == models.ServiceKindKnowledgeSharing {
		responseRecorded = true
		changed = true
	}
	if request.DealFulfilled != nil && *request.DealFulfilled && app.ServiceKind == models.ServiceKindPromotionalDeal {
		fulfillmentRecorded = true
		changed = true
	}

	if !changed {
		// Nothing to persist; a bare note still lands on the ledger
		if request.Note != "" {
			s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, "Note added", actor, noteText)
		}
		return s.GetApplication(ctx, appID, "")
	}

	updated.UpdatedTime = now

	if err := s.applicationDAO.UpdateWithTx(ctx, tx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	if responseRecorded {
		if err := s.knowledgeDAO.UpdateStaffResponseWithTx(ctx, tx, appID, *request.StaffResponse, now); err != nil {
			return nil, fmt.Errorf("failed to record staff response: %w", err)
		}
	}

	if fulfillmentRecorded {
		if err := s.dealDAO.MarkFulfilledWithTx(ctx, tx, appID, now); err != nil {
			return nil, fmt.Errorf("failed to mark deal fulfilled: %w", err)
		}
	}

	var mintedCertificate bool
	if statusChanged && requestedStatus == models.StatusApproved && app.ServiceKind.CertificateBearing() {
		hasCert, err := s.certificateDAO.ExistsByAppIDWithTx(ctx, tx, appID)
		if err != nil {
			return nil, fmt.Errorf("failed to check certificate existence: %w", err)
		}
		if hasCert {
			return nil, newError(models.ErrCodeCertificateExists, "certificate already issued for application: %s", appID)
		}

		cert := &models.Certificate{
			CertID:     utils.GenerateCertificateID(),
			AppID:      appID,
			CertNumber: utils.GenerateCertificateNumber(utils.MillisToTime(now)),
			IssuedTime: now,
		}
		if err := s.certificateDAO.CreateWithTx(ctx, tx, cert); err != nil {
			return nil, fmt.Errorf("failed to issue certificate: %w", err)
		}
		mintedCertificate = true
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if statusChanged {
		action := fmt.Sprintf("Status changed from %s to %s", previousStatus, requestedStatus)
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, action, actor, noteText)
		s.metrics.IncrementTransition(string(previousStatus), string(requestedStatus), "applied")
		if mintedCertificate {
			s.metrics.IncrementCertificatesIssued()
		}

		s.logger.WithFields(logrus.Fields{
			"app_id":           appID,
			"previous_status":  previousStatus,
			"new_status":       requestedStatus,
			"certificate_mint": mintedCertificate,
		}).Info("Application status changed")
	}

	if assignmentChanged {
		assignee := "nobody"
		if updated.AssignedTo != nil {
			assignee = *updated.AssignedTo
		}
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, fmt.Sprintf("Assigned to %s", assignee), actor, nil)
	}

	if notesChanged {
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, "Internal notes updated", actor, nil)
	}

	if reasonChanged && !statusChanged {
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, "Rejection reason updated", actor, nil)
	}

	if responseRecorded {
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, "Staff response recorded", actor, nil)
	}

	if fulfillmentRecorded {
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, "Deal marked fulfilled", actor, nil)
	}

	if !statusChanged && request.Note != "" {
		s.appendLedger(ctx, appID, app.ServiceKind, app.ApplicantName, "Note added", actor, noteText)
	}

	return s.GetApplication(ctx, appID, "")
}

// updateLegacyApplication covers the few mutations allowed on legacy records:
// the resubmission reset out of CORRECTIONS_REQUESTED, regular transitions on
// the normalized status, and review note appends. The transition is validated
// before anything is written, and the note, status and any minted certificate
// land in one transaction.
func (s *ApplicationService) updateLegacyApplication(ctx context.Context, appID string, request *models.ApplicationUpdateRequest, actor string) (*models.ApplicationDetail, error) {
	legacy, err := s.legacyDAO.GetByID(ctx, appID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, newError(models.ErrCodeApplicationNotFound, "application not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to retrieve legacy application: %w", err)
	}

	previous := models.NormalizeLegacyStatus(legacy.CurrentStatus)
	requested := models.Status(request.Status)
	statusChanged := request.Status != "" && requested != previous

	if statusChanged {
		// Resubmission resets a corrections-requested record to SUBMITTED;
		// everything else goes through the normal state graph
		resubmission := previous == models.StatusPendingInfo && requested == models.StatusSubmitted
		if !resubmission {
			if err := workflow.Validate(previous, requested); err != nil {
				var terr *workflow.TransitionError
				if errors.As(err, &terr) {
					s.metrics.IncrementTransition(string(previous), string(requested), "rejected")
					return nil, newError(models.ErrCodeInvalidTransition, "%s", terr.Error())
				}
				return nil, err
			}
		}
	}

	if !statusChanged && request.Note == "" {
		return s.GetApplication(ctx, appID, "")
	}

	now := utils.GetCurrentTimeMillis()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if request.Note != "" {
		note := &models.LegacyReviewNote{
			NoteID:      utils.GenerateNoteID(),
			AppID:       appID,
			NoteText:    request.Note,
			AuthorKind:  models.NoteAuthorStaff,
			CreatedTime: now,
		}
		if err := s.legacyDAO.CreateReviewNoteWithTx(ctx, tx, note); err != nil {
			return nil, fmt.Errorf("failed to append review note: %w", err)
		}
	}

	var mintedCertificate bool
	if statusChanged {
		stored := requested
		if requested == models.StatusPendingInfo {
			stored = models.LegacyStatusCorrections
		}
		if err := s.legacyDAO.UpdateStatusWithTx(ctx, tx, appID, stored, now); err != nil {
			return nil, fmt.Errorf("failed to update legacy application: %w", err)
		}

		// Legacy records are all ESG label applications, so approval mints a
		// certificate exactly like the current schema path
		if requested == models.StatusApproved {
			hasCert, err := s.certificateDAO.ExistsByAppIDWithTx(ctx, tx, appID)
			if err != nil {
				return nil, fmt.Errorf("failed to check certificate existence: %w", err)
			}
			if hasCert {
				return nil, newError(models.ErrCodeCertificateExists, "certificate already issued for application: %s", appID)
			}

			cert := &models.Certificate{
				CertID:     utils.GenerateCertificateID(),
				AppID:      appID,
				CertNumber: utils.GenerateCertificateNumber(utils.MillisToTime(now)),
				IssuedTime: now,
			}
			if err := s.certificateDAO.CreateWithTx(ctx, tx, cert); err != nil {
				return nil, fmt.Errorf("failed to issue certificate: %w", err)
			}
			mintedCertificate = true
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if statusChanged {
		var notes *string
		if request.Note != "" {
			note := request.Note
			notes = &note
		}
		action := fmt.Sprintf("Status changed from %s to %s", previous, requested)
		s.appendLedger(ctx, appID, models.ServiceKindESGLabel, legacy.ApplicantName, action, actor, notes)
		s.metrics.IncrementTransition(string(previous), string(requested), "applied")
		if mintedCertificate {
			s.metrics.IncrementCertificatesIssued()
		}

		s.logger.WithFields(logrus.Fields{
			"app_id":           appID,
			"previous_status":  previous,
			"new_status":       requested,
			"certificate_mint": mintedCertificate,
		}).Info("Legacy application status changed")
	} else if request.Note != "" {
		note := request.Note
		s.appendLedger(ctx, appID, models.ServiceKindESGLabel, legacy.ApplicantName, "Note added", actor, &note)
	}

	return s.GetApplication(ctx, appID, "")
}

// GetActivity retrieves the ledger entries for one application
func (s *ApplicationService) GetActivity(ctx context.Context, appID, applicantEmail string) ([]models.ActivityEntry, error) {
	detail, err := s.GetApplication(ctx, appID, applicantEmail)
	if err != nil {
		return nil, err
	}
	return detail.Activity, nil
}

// GetActivityFeed retrieves a page of the global ledger feed
func (s *ApplicationService) GetActivityFeed(ctx context.Context, limit, offset int) (*models.ActivityFeedResponse, error) {
	limit = utils.ValidateLimit(limit)
	offset = utils.ValidateOffset(offset)

	entries, total, err := s.activityLogDAO.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activity feed: %w", err)
	}

	return &models.ActivityFeedResponse{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// Reset purges every record family and the ledger. Exposed only on the admin
// surface for environment resets.
func (s *ApplicationService) Reset(ctx context.Context) error {
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if err := s.applicationDAO.Purge(ctx, tx); err != nil {
			return err
		}
		if err := s.legacyDAO.Purge(ctx, tx); err != nil {
			return err
		}
		return s.activityLogDAO.Purge(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to reset environment: %w", err)
	}

	s.logger.Warn("Environment reset: all records and ledger entries purged")
	return nil
}

func (s *ApplicationService) buildBaseDetail(app *models.Application) *models.ApplicationDetail {
	dept := models.DepartmentOf(app.ServiceKind)
	detail := &models.ApplicationDetail{
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
		ReviewedTime:    app.ReviewedTime,
		ReviewedBy:      app.ReviewedBy,
		RejectionReason: app.RejectionReason,
	}

	if workflow.IsOpen(app.CurrentStatus) {
		result := sla.Evaluate(utils.MillisToTime(app.SubmittedTime), s.slaCfg.DaysFor(string(app.ServiceKind)), utils.MillisToTime(utils.GetCurrentTimeMillis()))
		detail.SLA = slaIndicator(result)
	}

	return detail
}

func (s *ApplicationService) loadExtension(ctx context.Context, app *models.Application) (*models.Extension, error) {
	ext := &models.Extension{Kind: app.ServiceKind}
	switch app.ServiceKind {
	case models.ServiceKindESGLabel:
		esg, err := s.esgDAO.GetByAppID(ctx, app.AppID)
		if err != nil {
			return nil, err
		}
		ext.ESG = esg
	case models.ServiceKindKnowledgeSharing:
		knowledge, err := s.knowledgeDAO.GetByAppID(ctx, app.AppID)
		if err != nil {
			return nil, err
		}
		ext.Knowledge = knowledge
	case models.ServiceKindPromotionalDeal:
		deal, err := s.dealDAO.GetByAppID(ctx, app.AppID)
		if err != nil {
			return nil, err
		}
		ext.Deal = deal
	}
	return ext, nil
}

// appendLedger appends a ledger entry outside the business transaction.
// Failures are logged and never surfaced to the caller.
func (s *ApplicationService) appendLedger(ctx context.Context, appID string, kind models.ServiceKind, applicantName, action, actor string, notes *string) {
	entry := &models.ActivityEntry{
		LogID:         utils.GenerateLogID(),
		AppID:         appID,
		ServiceKind:   kind,
		ApplicantName: applicantName,
		Action:        action,
		Actor:         actor,
		Notes:         notes,
		ActionTime:    utils.GetCurrentTimeMillis(),
	}

	if err := s.activityLogDAO.Append(ctx, entry); err != nil {
		s.metrics.IncrementLedgerAppendFailures()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"app_id": appID,
			"action": action,
		}).Error("Failed to append activity entry")
	}
}

func slaIndicator(result sla.Result) *models.SLAIndicator {
	return &models.SLAIndicator{
		DaysElapsed:   result.DaysElapsed,
		DaysRemaining: result.DaysRemaining,
		OverdueDays:   result.OverdueDays,
		Bucket:        string(result.Bucket),
		Label:         result.Label,
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
