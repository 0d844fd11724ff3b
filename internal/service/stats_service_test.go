package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamberhq/services-portal-api/internal/dao"
	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/pkg/utils"
)

func newStatsService(t *testing.T) (*StatsService, sqlmock.Sqlmock) {
	t.Helper()

	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	db := database.New(sqlx.NewDb(rawDB, "sqlmock"), logger)
	return NewStatsService(dao.NewApplicationDAO(db), dao.NewLegacyDAO(db), logger), mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(n)
}

func TestGetStats_FoldsOpenLegacyRecords(t *testing.T) {
	svc, mock := newStatsService(t)

	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	dayMillis := int64(24 * time.Hour / time.Millisecond)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM SP_APPLICATION WHERE CURRENT_STATUS IN`).
		WithArgs("SUBMITTED", "UNDER_REVIEW", "PENDING_INFO").
		WillReturnRows(countRows(4))

	// CORRECTIONS_REQUESTED normalizes to PENDING_INFO (open); APPROVED does not count
	legacyCounts := sqlmock.NewRows([]string{"CURRENT_STATUS", "CNT"}).
		AddRow("CORRECTIONS_REQUESTED", 2).
		AddRow("SUBMITTED", 1).
		AddRow("APPROVED", 5)
	mock.ExpectQuery(`FROM SP_LEGACY_ESG_APPLICATION\s+WHERE APP_ID NOT IN`).
		WillReturnRows(legacyCounts)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM SP_APPLICATION WHERE CURRENT_STATUS IN`).
		WithArgs("SUBMITTED", "UNDER_REVIEW").
		WillReturnRows(countRows(3))

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM SP_APPLICATION\s+WHERE REVIEWED_TIME IS NOT NULL`).
		WithArgs(utils.StartOfDayMillis(now)).
		WillReturnRows(countRows(1))

	// Two resolutions: 2 days and 4 days, averaging 3.0
	submitted := now.UnixMilli() - 10*dayMillis
	pairRows := sqlmock.NewRows([]string{"SUBMITTED_TIME", "REVIEWED_TIME"}).
		AddRow(submitted, submitted+2*dayMillis).
		AddRow(submitted, submitted+4*dayMillis)
	mock.ExpectQuery(`SELECT SUBMITTED_TIME, REVIEWED_TIME\s+FROM SP_APPLICATION`).
		WillReturnRows(pairRows)

	// Oldest base submission is 5 days old, but an unmigrated legacy record
	// is 9 days old and drags the cohort into the critical band
	oldest := now.UnixMilli() - 5*dayMillis
	mock.ExpectQuery(`SELECT MIN\(SUBMITTED_TIME\) FROM SP_APPLICATION`).
		WillReturnRows(sqlmock.NewRows([]string{"MIN(SUBMITTED_TIME)"}).AddRow(oldest))

	legacyOldest := now.UnixMilli() - 9*dayMillis
	mock.ExpectQuery(`SELECT MIN\(CREATED_TIME\)\s+FROM SP_LEGACY_ESG_APPLICATION`).
		WithArgs("SUBMITTED", "UNDER_REVIEW", "PENDING_INFO", "CORRECTIONS_REQUESTED").
		WillReturnRows(sqlmock.NewRows([]string{"MIN(CREATED_TIME)"}).AddRow(legacyOldest))

	stats, err := svc.GetStats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalOpen)
	assert.Equal(t, 4, stats.PendingReview)
	assert.Equal(t, 1, stats.ResolvedToday)
	assert.Equal(t, 3.0, stats.AvgResolutionDays)
	assert.Equal(t, "3.0d", stats.AvgResolutionDisplay)
	assert.Equal(t, "critical", stats.AgingBucket)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats_EmptyCohort(t *testing.T) {
	svc, mock := newStatsService(t)

	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM SP_APPLICATION WHERE CURRENT_STATUS IN`).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(`FROM SP_LEGACY_ESG_APPLICATION\s+WHERE APP_ID NOT IN`).
		WillReturnRows(sqlmock.NewRows([]string{"CURRENT_STATUS", "CNT"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM SP_APPLICATION WHERE CURRENT_STATUS IN`).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM SP_APPLICATION\s+WHERE REVIEWED_TIME IS NOT NULL`).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(`SELECT SUBMITTED_TIME, REVIEWED_TIME\s+FROM SP_APPLICATION`).
		WillReturnRows(sqlmock.NewRows([]string{"SUBMITTED_TIME", "REVIEWED_TIME"}))
	mock.ExpectQuery(`SELECT MIN\(SUBMITTED_TIME\) FROM SP_APPLICATION`).
		WillReturnRows(sqlmock.NewRows([]string{"MIN(SUBMITTED_TIME)"}).AddRow(nil))
	mock.ExpectQuery(`SELECT MIN\(CREATED_TIME\)\s+FROM SP_LEGACY_ESG_APPLICATION`).
		WillReturnRows(sqlmock.NewRows([]string{"MIN(CREATED_TIME)"}).AddRow(nil))

	stats, err := svc.GetStats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalOpen)
	assert.Equal(t, 0.0, stats.AvgResolutionDays)
	assert.Equal(t, "—", stats.AvgResolutionDisplay)
	assert.Equal(t, "healthy", stats.AgingBucket)
	assert.NoError(t, mock.ExpectationsWereMet())
}
