package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// LegacyDAO handles database operations for the legacy ESG application table
// and its review notes. The legacy schema is read-mostly; the only write paths
// are the status reset on resubmission and applicant note appends.
type LegacyDAO struct {
	db *database.DB
}

// NewLegacyDAO creates a new LegacyDAO instance
func NewLegacyDAO(db *database.DB) *LegacyDAO {
	return &LegacyDAO{db: db}
}

const legacyColumns = `APP_ID, APPLICANT_NAME, APPLICANT_EMAIL, DESCRIPTION, CURRENT_STATUS,
	       ENV_PROFILE, SOCIAL_PROFILE, GOV_PROFILE, CREATED_TIME, UPDATED_TIME`

// GetByID retrieves a legacy application by ID
func (dao *LegacyDAO) GetByID(ctx context.Context, appID string) (*models.LegacyApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM SP_LEGACY_ESG_APPLICATION
		WHERE APP_ID = ?
	`, legacyColumns)

	var app models.LegacyApplication
	err := dao.db.GetContext(ctx, &app, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("legacy application not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to get legacy application: %w", err)
	}

	return &app, nil
}

// FindByFilter retrieves legacy applications scoped to an applicant and time
// window. Status filtering happens after normalization in the merge layer
// because the legacy table stores pre-migration status names.
func (dao *LegacyDAO) FindByFilter(ctx context.Context, filter *models.ListFilter) ([]models.LegacyApplication, error) {
	var conditions []string
	var args []interface{}

	if filter.ApplicantEmail != "" {
		conditions = append(conditions, "APPLICANT_EMAIL = ?")
		args = append(args, filter.ApplicantEmail)
	}

	if filter.FromTime != nil {
		conditions = append(conditions, "CREATED_TIME >= ?")
		args = append(args, *filter.FromTime)
	}

	if filter.ToTime != nil {
		conditions = append(conditions, "CREATED_TIME <= ?")
		args = append(args, *filter.ToTime)
	}

	query := fmt.Sprintf("SELECT %s FROM SP_LEGACY_ESG_APPLICATION", legacyColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY CREATED_TIME DESC"

	var apps []models.LegacyApplication
	err := dao.db.SelectContext(ctx, &apps, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find legacy applications: %w", err)
	}

	return apps, nil
}

// CountByStatusNotInBase counts legacy applications grouped by raw status,
// excluding IDs that already exist in the current schema so migrated records
// are not double counted
func (dao *LegacyDAO) CountByStatusNotInBase(ctx context.Context, applicantEmail string) (map[string]int, error) {
	query := `
		SELECT CURRENT_STATUS, COUNT(*) AS CNT
		FROM SP_LEGACY_ESG_APPLICATION
		WHERE APP_ID NOT IN (SELECT APP_ID FROM SP_APPLICATION)
	`
	var args []interface{}
	if applicantEmail != "" {
		query += " AND APPLICANT_EMAIL = ?"
		args = append(args, applicantEmail)
	}
	query += " GROUP BY CURRENT_STATUS"

	rows := []struct {
		Status string `db:"CURRENT_STATUS"`
		Count  int    `db:"CNT"`
	}{}
	if err := dao.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to count legacy applications by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	return counts, nil
}

// GetOldestOpenTimeNotInBase returns the earliest submission time among
// unmigrated legacy applications whose raw status is in the given set, or nil
// when none match
func (dao *LegacyDAO) GetOldestOpenTimeNotInBase(ctx context.Context, statuses []models.Status) (*int64, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(statuses)-1) + "?"
	query := fmt.Sprintf(`
		SELECT MIN(CREATED_TIME)
		FROM SP_LEGACY_ESG_APPLICATION
		WHERE APP_ID NOT IN (SELECT APP_ID FROM SP_APPLICATION)
		AND CURRENT_STATUS IN (%s)
	`, placeholders)

	args := make([]interface{}, len(statuses))
	for i, status := range statuses {
		args[i] = status
	}

	var oldest sql.NullInt64
	if err := dao.db.GetContext(ctx, &oldest, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get oldest open legacy time: %w", err)
	}

	if !oldest.Valid {
		return nil, nil
	}

	value := oldest.Int64
	return &value, nil
}

// UpdateStatusWithTx updates a legacy application's status and touch time
// within an existing transaction
func (dao *LegacyDAO) UpdateStatusWithTx(ctx context.Context, tx *database.Transaction, appID string, status models.Status, updatedTime int64) error {
	query := `
		UPDATE SP_LEGACY_ESG_APPLICATION
		SET CURRENT_STATUS = ?, UPDATED_TIME = ?
		WHERE APP_ID = ?
	`

	result, err := tx.ExecContext(ctx, query, status, updatedTime, appID)
	if err != nil {
		return fmt.Errorf("failed to update legacy application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("legacy application not found: %s", appID)
	}

	return nil
}

// GetReviewNotes retrieves the review notes for a legacy application, oldest first
func (dao *LegacyDAO) GetReviewNotes(ctx context.Context, appID string) ([]models.LegacyReviewNote, error) {
	query := `
		SELECT NOTE_ID, APP_ID, NOTE_TEXT, AUTHOR_KIND, CREATED_TIME
		FROM SP_LEGACY_REVIEW_NOTE
		WHERE APP_ID = ?
		ORDER BY CREATED_TIME ASC
	`

	var notes []models.LegacyReviewNote
	err := dao.db.SelectContext(ctx, &notes, query, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to get legacy review notes: %w", err)
	}

	return notes, nil
}

// CreateReviewNoteWithTx appends a review note to a legacy application within
// an existing transaction, so the note never lands without its status change
func (dao *LegacyDAO) CreateReviewNoteWithTx(ctx context.Context, tx *database.Transaction, note *models.LegacyReviewNote) error {
	query := `
		INSERT INTO SP_LEGACY_REVIEW_NOTE (
			NOTE_ID, APP_ID, NOTE_TEXT, AUTHOR_KIND, CREATED_TIME
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		note.NoteID,
		note.AppID,
		note.NoteText,
		note.AuthorKind,
		note.CreatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create legacy review note: %w", err)
	}

	return nil
}

// Exists checks if a legacy application exists
func (dao *LegacyDAO) Exists(ctx context.Context, appID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM SP_LEGACY_ESG_APPLICATION WHERE APP_ID = ?)`

	var exists bool
	err := dao.db.GetContext(ctx, &exists, query, appID)
	if err != nil {
		return false, fmt.Errorf("failed to check legacy application existence: %w", err)
	}

	return exists, nil
}

// Purge deletes all legacy applications and review notes
func (dao *LegacyDAO) Purge(ctx context.Context, tx *database.Transaction) error {
	statements := []string{
		"DELETE FROM SP_LEGACY_REVIEW_NOTE",
		"DELETE FROM SP_LEGACY_ESG_APPLICATION",
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to purge legacy applications: %w", err)
		}
	}

	return nil
}
