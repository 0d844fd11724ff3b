package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// KnowledgeExtensionDAO handles database operations for knowledge sharing extension rows
type KnowledgeExtensionDAO struct {
	db *database.DB
}

// NewKnowledgeExtensionDAO creates a new KnowledgeExtensionDAO instance
func NewKnowledgeExtensionDAO(db *database.DB) *KnowledgeExtensionDAO {
	return &KnowledgeExtensionDAO{db: db}
}

// CreateWithTx inserts a new knowledge extension row using a transaction
func (dao *KnowledgeExtensionDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, ext *models.KnowledgeExtension) error {
	query := `
		INSERT INTO SP_KNOWLEDGE_EXTENSION (
			APP_ID, REQUEST_TYPE, PROGRAM_ID, PROGRAM_NAME, SESSION_DATE,
			ATTENDEE_COUNT, QUERY_TEXT, STAFF_RESPONSE, RESPONDED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		ext.AppID,
		ext.RequestType,
		ext.ProgramID,
		ext.ProgramName,
		ext.SessionDate,
		ext.AttendeeCount,
		ext.QueryText,
		ext.StaffResponse,
		ext.RespondedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create knowledge extension: %w", err)
	}

	return nil
}

// GetByAppID retrieves the knowledge extension row for an application
func (dao *KnowledgeExtensionDAO) GetByAppID(ctx context.Context, appID string) (*models.KnowledgeExtension, error) {
	query := `
		SELECT APP_ID, REQUEST_TYPE, PROGRAM_ID, PROGRAM_NAME, SESSION_DATE,
		       ATTENDEE_COUNT, QUERY_TEXT, STAFF_RESPONSE, RESPONDED_TIME
		FROM SP_KNOWLEDGE_EXTENSION
		WHERE APP_ID = ?
	`

	var ext models.KnowledgeExtension
	err := dao.db.GetContext(ctx, &ext, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("knowledge extension not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to get knowledge extension: %w", err)
	}

	return &ext, nil
}

// UpdateStaffResponseWithTx records the staff response on a training query
func (dao *KnowledgeExtensionDAO) UpdateStaffResponseWithTx(ctx context.Context, tx *database.Transaction, appID, response string, respondedTime int64) error {
	query := `
		UPDATE SP_KNOWLEDGE_EXTENSION
		SET STAFF_RESPONSE = ?, RESPONDED_TIME = ?
		WHERE APP_ID = ?
	`

	result, err := tx.ExecContext(ctx, query, response, respondedTime, appID)
	if err != nil {
		return fmt.Errorf("failed to update staff response: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("knowledge extension not found: %s", appID)
	}

	return nil
}

// GetByAppIDs retrieves knowledge extension rows for a set of applications
func (dao *KnowledgeExtensionDAO) GetByAppIDs(ctx context.Context, appIDs []string) (map[string]models.KnowledgeExtension, error) {
	if len(appIDs) == 0 {
		return map[string]models.KnowledgeExtension{}, nil
	}

	placeholders := strings.Repeat("?,", len(appIDs)-1) + "?"
	query := fmt.Sprintf(`
		SELECT APP_ID, REQUEST_TYPE, PROGRAM_ID, PROGRAM_NAME, SESSION_DATE,
		       ATTENDEE_COUNT, QUERY_TEXT, STAFF_RESPONSE, RESPONDED_TIME
		FROM SP_KNOWLEDGE_EXTENSION
		WHERE APP_ID IN (%s)
	`, placeholders)

	args := make([]interface{}, 0, len(appIDs))
	for _, id := range appIDs {
		args = append(args, id)
	}

	var exts []models.KnowledgeExtension
	if err := dao.db.SelectContext(ctx, &exts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get knowledge extensions: %w", err)
	}

	byID := make(map[string]models.KnowledgeExtension, len(exts))
	for _, ext := range exts {
		byID[ext.AppID] = ext
	}

	return byID, nil
}
