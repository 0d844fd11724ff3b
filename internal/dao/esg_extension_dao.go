package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// ESGExtensionDAO handles database operations for ESG label extension rows
type ESGExtensionDAO struct {
	db *database.DB
}

// NewESGExtensionDAO creates a new ESGExtensionDAO instance
func NewESGExtensionDAO(db *database.DB) *ESGExtensionDAO {
	return &ESGExtensionDAO{db: db}
}

// CreateWithTx inserts a new ESG extension row using a transaction
func (dao *ESGExtensionDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, ext *models.ESGExtension) error {
	query := `
		INSERT INTO SP_ESG_EXTENSION (
			APP_ID, ENV_PROFILE, SOCIAL_PROFILE, GOV_PROFILE, SUB_SECTOR, TRADE_LICENSE_NO
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		ext.AppID,
		ext.EnvProfile,
		ext.SocialProfile,
		ext.GovProfile,
		ext.SubSector,
		ext.TradeLicenseNo,
	)

	if err != nil {
		return fmt.Errorf("failed to create ESG extension: %w", err)
	}

	return nil
}

// GetByAppID retrieves the ESG extension row for an application
func (dao *ESGExtensionDAO) GetByAppID(ctx context.Context, appID string) (*models.ESGExtension, error) {
	query := `
		SELECT APP_ID, ENV_PROFILE, SOCIAL_PROFILE, GOV_PROFILE, SUB_SECTOR, TRADE_LICENSE_NO
		FROM SP_ESG_EXTENSION
		WHERE APP_ID = ?
	`

	var ext models.ESGExtension
	err := dao.db.GetContext(ctx, &ext, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ESG extension not found: %s", appID)
		}
		return nil, fmt.Errorf("failed to get ESG extension: %w", err)
	}

	return &ext, nil
}

// GetByAppIDs retrieves ESG extension rows for a set of applications
func (dao *ESGExtensionDAO) GetByAppIDs(ctx context.Context, appIDs []string) (map[string]models.ESGExtension, error) {
	if len(appIDs) == 0 {
		return map[string]models.ESGExtension{}, nil
	}

	placeholders := strings.Repeat("?,", len(appIDs)-1) + "?"
	query := fmt.Sprintf(`
		SELECT APP_ID, ENV_PROFILE, SOCIAL_PROFILE, GOV_PROFILE, SUB_SECTOR, TRADE_LICENSE_NO
		FROM SP_ESG_EXTENSION
		WHERE APP_ID IN (%s)
	`, placeholders)

	args := make([]interface{}, 0, len(appIDs))
	for _, id := range appIDs {
		args = append(args, id)
	}

	var exts []models.ESGExtension
	if err := dao.db.SelectContext(ctx, &exts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get ESG extensions: %w", err)
	}

	byID := make(map[string]models.ESGExtension, len(exts))
	for _, ext := range exts {
		byID[ext.AppID] = ext
	}

	return byID, nil
}
