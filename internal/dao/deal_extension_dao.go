package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// DealExtensionDAO handles database operations for promotional deal extension rows
type DealExtensionDAO struct {
	db *database.DB
}

// NewDealExtensionDAO creates a new DealExtensionDAO instance
func NewDealExtensionDAO(db *database.DB) *DealExtensionDAO {
	return &DealExtensionDAO{db: db}
}

// CreateWithTx inserts a new deal extension row using a transaction
func (dao *DealExtensionDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, ext *models.DealExtension) error {
	query := `
		INSERT INTO SP_DEAL_EXTENSION (
			APP_ID, DEAL_ID, DEAL_TITLE, VOUCHER_CODE, FULFILLED_TIME
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		ext.AppID,
		ext.DealID,
		ext.DealTitle,
		ext.VoucherCode,
		ext.FulfilledTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create deal extension: %w", err)
	}

	return nil
}

// GetByAppID retrieves the deal extension row for an application
func (dao *DealExtensionDAO) GetByAppID(ctx context.Context, appID string) (*models.DealExtension, error) {
	query := `
		SELECT APP_ID, DEAL_ID, DEAL_TITLE, VOUCHER_CODE, FULFILLED_TIME
		FROM SP_DEAL_EXTENSION
		WHERE APP_ID = ?
	`

	var ext models.DealExtension
	err := dao.db.GetContext(ctx, &ext, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("deal extension not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to get deal extension: %w", err)
	}

	return &ext, nil
}

// MarkFulfilledWithTx stamps the fulfilment time on a deal claim
func (dao *DealExtensionDAO) MarkFulfilledWithTx(ctx context.Context, tx *database.Transaction, appID string, fulfilledTime int64) error {
	query := `
		UPDATE SP_DEAL_EXTENSION
		SET FULFILLED_TIME = ?
		WHERE APP_ID = ?
	`

	result, err := tx.ExecContext(ctx, query, fulfilledTime, appID)
	if err != nil {
		return fmt.Errorf("failed to mark deal fulfilled: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("deal extension not found: %s", appID)
	}

	return nil
}

// GetByAppIDs retrieves deal extension rows for a set of applications
func (dao *DealExtensionDAO) GetByAppIDs(ctx context.Context, appIDs []string) (map[string]models.DealExtension, error) {
	if len(appIDs) == 0 {
		return map[string]models.DealExtension{}, nil
	}

	placeholders := strings.Repeat("?,", len(appIDs)-1) + "?"
	query := fmt.Sprintf(`
		SELECT APP_ID, DEAL_ID, DEAL_TITLE, VOUCHER_CODE, FULFILLED_TIME
		FROM SP_DEAL_EXTENSION
		WHERE APP_ID IN (%s)
	`, placeholders)

	args := make([]interface{}, 0, len(appIDs))
	for _, id := range appIDs {
		args = append(args, id)
	}

	var exts []models.DealExtension
	if err := dao.db.SelectContext(ctx, &exts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get deal extensions: %w", err)
	}

	byID := make(map[string]models.DealExtension, len(exts))
	for _, ext := range exts {
		byID[ext.AppID] = ext
	}

	return byID, nil
}
