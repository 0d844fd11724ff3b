package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

// CertificateDAO handles database operations for issued certificates
type CertificateDAO struct {
	db *database.DB
}

// NewCertificateDAO creates a new CertificateDAO instance
func NewCertificateDAO(db *database.DB) *CertificateDAO {
	return &CertificateDAO{db: db}
}

// CreateWithTx inserts a new certificate using a transaction. Certificates are
// only ever minted inside the approval transaction.
func (dao *CertificateDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, cert *models.Certificate) error {
	query := `
		INSERT INTO SP_CERTIFICATE (
			CERT_ID, APP_ID, CERT_NUMBER, ISSUED_TIME, VALID_UNTIL
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		cert.CertID,
		cert.AppID,
		cert.CertNumber,
		cert.IssuedTime,
		cert.ValidUntil,
	)

	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	return nil
}

// GetByAppID retrieves the certificate issued for an application
func (dao *CertificateDAO) GetByAppID(ctx context.Context, appID string) (*models.Certificate, error) {
	query := `
		SELECT CERT_ID, APP_ID, CERT_NUMBER, ISSUED_TIME, VALID_UNTIL
		FROM SP_CERTIFICATE
		WHERE APP_ID = ?
	`

	var cert models.Certificate
	err := dao.db.GetContext(ctx, &cert, query, appID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("certificate not found for application: %s", appID)
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	return &cert, nil
}

// ExistsByAppIDWithTx checks inside a transaction whether an application
// already holds a certificate
func (dao *CertificateDAO) ExistsByAppIDWithTx(ctx context.Context, tx *database.Transaction, appID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM SP_CERTIFICATE WHERE APP_ID = ?)`

	var exists bool
	err := tx.GetContext(ctx, &exists, query, appID)
	if err != nil {
		return false, fmt.Errorf("failed to check certificate existence: %w", err)
	}

	return exists, nil
}
