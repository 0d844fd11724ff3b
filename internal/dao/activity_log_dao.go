package dao

import (
	"context"
	"fmt"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// ActivityLogDAO handles database operations for the append-only activity ledger
type ActivityLogDAO struct {
	db *database.DB
}

// NewActivityLogDAO creates a new ActivityLogDAO instance
func NewActivityLogDAO(db *database.DB) *ActivityLogDAO {
	return &ActivityLogDAO{db: db}
}

// Append inserts a new ledger entry. Entries are never updated or deleted
// outside of an environment reset.
func (dao *ActivityLogDAO) Append(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO SP_ACTIVITY_LOG (
			LOG_ID, APP_ID, SERVICE_KIND, APPLICANT_NAME, ACTION, ACTOR, NOTES, ACTION_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		entry.LogID,
		entry.AppID,
		entry.ServiceKind,
		entry.ApplicantName,
		entry.Action,
		entry.Actor,
		entry.Notes,
		entry.ActionTime,
	)

	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}

	return nil
}

// GetByAppID retrieves the ledger entries for an application, newest first
func (dao *ActivityLogDAO) GetByAppID(ctx context.Context, appID string) ([]models.ActivityEntry, error) {
	query := `
		SELECT LOG_ID, APP_ID, SERVICE_KIND, APPLICANT_NAME, ACTION, ACTOR, NOTES, ACTION_TIME
		FROM SP_ACTIVITY_LOG
		WHERE APP_ID = ?
		ORDER BY ACTION_TIME DESC, LOG_ID DESC
	`

	var entries []models.ActivityEntry
	err := dao.db.SelectContext(ctx, &entries, query, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity entries: %w", err)
	}

	return entries, nil
}

// List retrieves a page of the global ledger feed, newest first
func (dao *ActivityLogDAO) List(ctx context.Context, limit, offset int) ([]models.ActivityEntry, int, error) {
	countQuery := `SELECT COUNT(*) FROM SP_ACTIVITY_LOG`

	var total int
	if err := dao.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	query := `
		SELECT LOG_ID, APP_ID, SERVICE_KIND, APPLICANT_NAME, ACTION, ACTOR, NOTES, ACTION_TIME
		FROM SP_ACTIVITY_LOG
		ORDER BY ACTION_TIME DESC, LOG_ID DESC
		LIMIT ? OFFSET ?
	`

	var entries []models.ActivityEntry
	if err := dao.db.SelectContext(ctx, &entries, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list activity entries: %w", err)
	}

	return entries, total, nil
}

// Purge deletes all ledger entries
func (dao *ActivityLogDAO) Purge(ctx context.Context, tx *database.Transaction) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM SP_ACTIVITY_LOG"); err != nil {
		return fmt.Errorf("failed to purge activity entries: %w", err)
	}

	return nil
}
