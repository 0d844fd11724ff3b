package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// ApplicationDAO handles database operations for applications
type ApplicationDAO struct {
	db *database.DB
}

// NewApplicationDAO creates a new ApplicationDAO instance
func NewApplicationDAO(db *database.DB) *ApplicationDAO {
	return &ApplicationDAO{db: db}
}

const applicationColumns = `APP_ID, SERVICE_KIND, CURRENT_STATUS, APPLICANT_NAME, APPLICANT_EMAIL,
	       ASSIGNED_TO, SUBMITTED_TIME, UPDATED_TIME, REVIEWED_TIME, REVIEWED_BY,
	       REJECTION_REASON, INTERNAL_NOTES`

// Create inserts a new application into the database
func (dao *ApplicationDAO) Create(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO SP_APPLICATION (
			APP_ID, SERVICE_KIND, CURRENT_STATUS, APPLICANT_NAME, APPLICANT_EMAIL,
			ASSIGNED_TO, SUBMITTED_TIME, UPDATED_TIME, REVIEWED_TIME, REVIEWED_BY,
			REJECTION_REASON, INTERNAL_NOTES
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		app.AppID,
		app.ServiceKind,
		app.CurrentStatus,
		app.ApplicantName,
		app.ApplicantEmail,
		app.AssignedTo,
		app.SubmittedTime,
		app.UpdatedTime,
		app.ReviewedTime,
		app.ReviewedBy,
		app.RejectionReason,
		app.InternalNotes,
	)

	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// CreateWithTx inserts a new application using a transaction
func (dao *ApplicationDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, app *models.Application) error {
	query := `
		INSERT INTO SP_APPLICATION (
			APP_ID, SERVICE_KIND, CURRENT_STATUS, APPLICANT_NAME, APPLICANT_EMAIL,
			ASSIGNED_TO, SUBMITTED_TIME, UPDATED_TIME, REVIEWED_TIME, REVIEWED_BY,
			REJECTION_REASON, INTERNAL_NOTES
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		app.AppID,
		app.ServiceKind,
		app.CurrentStatus,
		app.ApplicantName,
		app.ApplicantEmail,
		app.AssignedTo,
		app.SubmittedTime,
		app.UpdatedTime,
		app.ReviewedTime,
		app.ReviewedBy,
		app.RejectionReason,
		app.InternalNotes,
	)

	if err != nil {
		return fmt.Errorf("failed to create application with transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (dao *ApplicationDAO) GetByID(ctx context.Context, appID string) (*models.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM SP_APPLICATION
		WHERE APP_ID = ?
	`, applicationColumns)

	var app models.Application
	err := dao.db.GetContext(ctx, &app, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("application not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

// GetByIDWithTx retrieves an application by ID using a transaction
func (dao *ApplicationDAO) GetByIDWithTx(ctx context.Context, tx *database.Transaction, appID string) (*models.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM SP_APPLICATION
		WHERE APP_ID = ?
	`, applicationColumns)

	var app models.Application
	err := tx.GetContext(ctx, &app, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("application not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to get application with transaction: %w", err)
	}

	return &app, nil
}

// UpdateWithTx updates an existing application using a transaction
func (dao *ApplicationDAO) UpdateWithTx(ctx context.Context, tx *database.Transaction, app *models.Application) error {
	query := `
		UPDATE SP_APPLICATION
		SET CURRENT_STATUS = ?, ASSIGNED_TO = ?, UPDATED_TIME = ?,
		    REVIEWED_TIME = ?, REVIEWED_BY = ?, REJECTION_REASON = ?, INTERNAL_NOTES = ?
		WHERE APP_ID = ?
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		app.CurrentStatus,
		app.AssignedTo,
		app.UpdatedTime,
		app.ReviewedTime,
		app.ReviewedBy,
		app.RejectionReason,
		app.InternalNotes,
		app.AppID,
	)

	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("application not found: %s", app.AppID)
	}

	return nil
}

// FindByFilter retrieves applications matching the filter.
// Statuses, service kinds and the time window are applied in SQL; free-text
// search, sorting and pagination happen in the merge layer alongside legacy rows.
func (dao *ApplicationDAO) FindByFilter(ctx context.Context, filter *models.ListFilter) ([]models.Application, error) {
	var conditions []string
	var args []interface{}

	if filter.ApplicantEmail != "" {
		conditions = append(conditions, "APPLICANT_EMAIL = ?")
		args = append(args, filter.ApplicantEmail)
	}

	if len(filter.ServiceKinds) > 0 {
		placeholders := strings.Repeat("?,", len(filter.ServiceKinds)-1) + "?"
		conditions = append(conditions, fmt.Sprintf("SERVICE_KIND IN (%s)", placeholders))
		for _, k := range filter.ServiceKinds {
			args = append(args, k)
		}
	}

	if len(filter.Statuses) > 0 {
		placeholders := strings.Repeat("?,", len(filter.Statuses)-1) + "?"
		conditions = append(conditions, fmt.Sprintf("CURRENT_STATUS IN (%s)", placeholders))
		for _, s := range filter.Statuses {
			args = append(args, s)
		}
	}

	if filter.FromTime != nil {
		conditions = append(conditions, "SUBMITTED_TIME >= ?")
		args = append(args, *filter.FromTime)
	}

	if filter.ToTime != nil {
		conditions = append(conditions, "SUBMITTED_TIME <= ?")
		args = append(args, *filter.ToTime)
	}

	query := fmt.Sprintf("SELECT %s FROM SP_APPLICATION", applicationColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY SUBMITTED_TIME DESC"

	var apps []models.Application
	err := dao.db.SelectContext(ctx, &apps, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}

	return apps, nil
}

// ListIDs returns the IDs of all applications, optionally scoped to an applicant
func (dao *ApplicationDAO) ListIDs(ctx context.Context, applicantEmail string) ([]string, error) {
	query := "SELECT APP_ID FROM SP_APPLICATION"
	var args []interface{}
	if applicantEmail != "" {
		query += " WHERE APPLICANT_EMAIL = ?"
		args = append(args, applicantEmail)
	}

	var ids []string
	err := dao.db.SelectContext(ctx, &ids, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list application IDs: %w", err)
	}

	return ids, nil
}

// CountByServiceKind counts applications grouped by service kind
func (dao *ApplicationDAO) CountByServiceKind(ctx context.Context, applicantEmail string) (map[models.ServiceKind]int, error) {
	query := "SELECT SERVICE_KIND, COUNT(*) AS CNT FROM SP_APPLICATION"
	var args []interface{}
	if applicantEmail != "" {
		query += " WHERE APPLICANT_EMAIL = ?"
		args = append(args, applicantEmail)
	}
	query += " GROUP BY SERVICE_KIND"

	rows := []struct {
		ServiceKind models.ServiceKind `db:"SERVICE_KIND"`
		Count       int                `db:"CNT"`
	}{}
	if err := dao.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications by service kind: %w", err)
	}

	counts := make(map[models.ServiceKind]int, len(rows))
	for _, r := range rows {
		counts[r.ServiceKind] = r.Count
	}

	return counts, nil
}

// CountByStatus counts applications grouped by current status
func (dao *ApplicationDAO) CountByStatus(ctx context.Context, applicantEmail string) (map[models.Status]int, error) {
	query := "SELECT CURRENT_STATUS, COUNT(*) AS CNT FROM SP_APPLICATION"
	var args []interface{}
	if applicantEmail != "" {
		query += " WHERE APPLICANT_EMAIL = ?"
		args = append(args, applicantEmail)
	}
	query += " GROUP BY CURRENT_STATUS"

	rows := []struct {
		Status models.Status `db:"CURRENT_STATUS"`
		Count  int           `db:"CNT"`
	}{}
	if err := dao.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}

	counts := make(map[models.Status]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	return counts, nil
}

// CountWithStatuses counts applications whose status is in the given set
func (dao *ApplicationDAO) CountWithStatuses(ctx context.Context, statuses []models.Status) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(statuses)-1) + "?"
	query := fmt.Sprintf("SELECT COUNT(*) FROM SP_APPLICATION WHERE CURRENT_STATUS IN (%s)", placeholders)

	args := make([]interface{}, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, s)
	}

	var count int
	if err := dao.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count applications by statuses: %w", err)
	}

	return count, nil
}

// CountResolvedSince counts applications reviewed at or after the given time
func (dao *ApplicationDAO) CountResolvedSince(ctx context.Context, since int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM SP_APPLICATION
		WHERE REVIEWED_TIME IS NOT NULL AND REVIEWED_TIME >= ?
	`

	var count int
	if err := dao.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, fmt.Errorf("failed to count resolved applications: %w", err)
	}

	return count, nil
}

// ResolutionPair holds the submission and review times of a resolved application
type ResolutionPair struct {
	SubmittedTime int64 `db:"SUBMITTED_TIME"`
	ReviewedTime  int64 `db:"REVIEWED_TIME"`
}

// GetResolutionPairsSince returns submitted/reviewed time pairs for applications
// resolved at or after the given time
func (dao *ApplicationDAO) GetResolutionPairsSince(ctx context.Context, since int64) ([]ResolutionPair, error) {
	query := `
		SELECT SUBMITTED_TIME, REVIEWED_TIME
		FROM SP_APPLICATION
		WHERE REVIEWED_TIME IS NOT NULL AND REVIEWED_TIME >= ?
	`

	var pairs []ResolutionPair
	if err := dao.db.SelectContext(ctx, &pairs, query, since); err != nil {
		return nil, fmt.Errorf("failed to get resolution pairs: %w", err)
	}

	return pairs, nil
}

// GetOldestUnresolvedTime returns the submission time of the oldest application
// still in an open status, or nil when none are open
func (dao *ApplicationDAO) GetOldestUnresolvedTime(ctx context.Context, openStatuses []models.Status) (*int64, error) {
	if len(openStatuses) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(openStatuses)-1) + "?"
	query := fmt.Sprintf("SELECT MIN(SUBMITTED_TIME) FROM SP_APPLICATION WHERE CURRENT_STATUS IN (%s)", placeholders)

	args := make([]interface{}, 0, len(openStatuses))
	for _, s := range openStatuses {
		args = append(args, s)
	}

	var oldest sql.NullInt64
	if err := dao.db.GetContext(ctx, &oldest, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get oldest unresolved time: %w", err)
	}

	if !oldest.Valid {
		return nil, nil
	}

	return &oldest.Int64, nil
}

// Exists checks if an application exists
func (dao *ApplicationDAO) Exists(ctx context.Context, appID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM SP_APPLICATION WHERE APP_ID = ?)`

	var exists bool
	err := dao.db.GetContext(ctx, &exists, query, appID)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// Purge deletes all applications and their extension rows
func (dao *ApplicationDAO) Purge(ctx context.Context, tx *database.Transaction) error {
	statements := []string{
		"DELETE FROM SP_ESG_EXTENSION",
		"DELETE FROM SP_KNOWLEDGE_EXTENSION",
		"DELETE FROM SP_DEAL_EXTENSION",
		"DELETE FROM SP_CERTIFICATE",
		"DELETE FROM SP_APPLICATION",
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to purge applications: %w", err)
		}
	}

	return nil
}
