package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamberhq/services-portal-api/internal/config"
	"github.com/chamberhq/services-portal-api/internal/dao"
	"github.com/chamberhq/services-portal-api/internal/database"
	"github.com/chamberhq/services-portal-api/internal/models"
)

var legacyColumns = []string{
	"APP_ID", "APPLICANT_NAME", "APPLICANT_EMAIL", "DESCRIPTION", "CURRENT_STATUS",
	"ENV_PROFILE", "SOCIAL_PROFILE", "GOV_PROFILE", "CREATED_TIME", "UPDATED_TIME",
}

func newListingService(t *testing.T) (*ListingService, sqlmock.Sqlmock) {
	t.Helper()

	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { rawDB.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	db := database.New(sqlx.NewDb(rawDB, "sqlmock"), logger)
	slaCfg := &config.SLAConfig{DaysByKind: map[string]int{"esg_label": 5, "knowledge_sharing": 1}}

	svc := NewListingService(
		dao.NewApplicationDAO(db),
		dao.NewESGExtensionDAO(db),
		dao.NewKnowledgeExtensionDAO(db),
		dao.NewDealExtensionDAO(db),
		dao.NewLegacyDAO(db),
		slaCfg,
		logger,
	)

	return svc, mock
}

func expectFacetQueries(mock sqlmock.Sqlmock, kindRows, statusRows, legacyRows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT SERVICE_KIND, COUNT\(\*\) AS CNT FROM SP_APPLICATION`).
		WillReturnRows(kindRows)
	mock.ExpectQuery(`SELECT CURRENT_STATUS, COUNT\(\*\) AS CNT FROM SP_APPLICATION`).
		WillReturnRows(statusRows)
	mock.ExpectQuery(`FROM SP_LEGACY_ESG_APPLICATION\s+WHERE APP_ID NOT IN`).
		WillReturnRows(legacyRows)
}

func emptyFacetRows() (*sqlmock.Rows, *sqlmock.Rows, *sqlmock.Rows) {
	return sqlmock.NewRows([]string{"SERVICE_KIND", "CNT"}),
		sqlmock.NewRows([]string{"CURRENT_STATUS", "CNT"}),
		sqlmock.NewRows([]string{"CURRENT_STATUS", "CNT"})
}

func TestList_MergePrefersBaseCopy(t *testing.T) {
	svc, mock := newListingService(t)

	baseRows := sqlmock.NewRows(applicationColumns).AddRow(
		"APP-10", "esg_label", "UNDER_REVIEW", "Omar Said", "omar@example.com",
		nil, int64(1700000000000), int64(1700000000000), nil, nil, nil, nil,
	)
	mock.ExpectQuery("FROM SP_APPLICATION").WillReturnRows(baseRows)

	extRows := sqlmock.NewRows([]string{
		"APP_ID", "ENV_PROFILE", "SOCIAL_PROFILE", "GOV_PROFILE", "SUB_SECTOR", "TRADE_LICENSE_NO",
	}).AddRow("APP-10", nil, nil, nil, "Logistics", "TL-1")
	mock.ExpectQuery("FROM SP_ESG_EXTENSION").WillReturnRows(extRows)

	mock.ExpectQuery("SELECT APP_ID FROM SP_APPLICATION").
		WillReturnRows(sqlmock.NewRows([]string{"APP_ID"}).AddRow("APP-10"))

	// APP-10 was migrated and exists in both families; LEG-1 is legacy only
	legacyList := sqlmock.NewRows(legacyColumns).
		AddRow("APP-10", "Omar Said", "omar@example.com", "old migrated record", "APPROVED",
			nil, nil, nil, int64(1600000000000), int64(1600000000000)).
		AddRow("LEG-1", "Mariam Ali", "mariam@example.com", "solar panel audit request", "CORRECTIONS_REQUESTED",
			nil, nil, nil, int64(1500000000000), int64(1500000000000))
	mock.ExpectQuery("FROM SP_LEGACY_ESG_APPLICATION").WillReturnRows(legacyList)

	kindRows, statusRows, legacyCounts := emptyFacetRows()
	kindRows.AddRow("esg_label", 1)
	statusRows.AddRow("UNDER_REVIEW", 1)
	legacyCounts.AddRow("CORRECTIONS_REQUESTED", 1)
	expectFacetQueries(mock, kindRows, statusRows, legacyCounts)

	resp, err := svc.List(context.Background(), &models.ListFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	assert.Equal(t, 2, resp.TotalCount)

	byID := map[string]models.ApplicationRow{}
	for _, row := range resp.Rows {
		byID[row.AppID] = row
	}
	assert.False(t, byID["APP-10"].Legacy)
	require.Contains(t, byID, "LEG-1")
	assert.True(t, byID["LEG-1"].Legacy)
	assert.Equal(t, models.StatusPendingInfo, byID["LEG-1"].Status)
	assert.Equal(t, "solar panel audit request", byID["LEG-1"].Summary)

	assert.Equal(t, 2, resp.FacetCounts.ByServiceKind[models.ServiceKindESGLabel])
	assert.Equal(t, 1, resp.FacetCounts.ByStatus[models.StatusPendingInfo])
	assert.Equal(t, 2, resp.FacetCounts.ByDepartment[models.DepartmentOf(models.ServiceKindESGLabel)])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_StatusFilterAppliesAfterNormalization(t *testing.T) {
	svc, mock := newListingService(t)

	mock.ExpectQuery("FROM SP_APPLICATION").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	mock.ExpectQuery("SELECT APP_ID FROM SP_APPLICATION").
		WillReturnRows(sqlmock.NewRows([]string{"APP_ID"}))

	legacyList := sqlmock.NewRows(legacyColumns).
		AddRow("LEG-1", "Mariam Ali", "mariam@example.com", "solar panel audit", "CORRECTIONS_REQUESTED",
			nil, nil, nil, int64(1500000000000), int64(1500000000000)).
		AddRow("LEG-2", "Khalid Noor", "khalid@example.com", "waste audit", "APPROVED",
			nil, nil, nil, int64(1400000000000), int64(1400000000000))
	mock.ExpectQuery("FROM SP_LEGACY_ESG_APPLICATION").WillReturnRows(legacyList)

	kindRows, statusRows, legacyCounts := emptyFacetRows()
	expectFacetQueries(mock, kindRows, statusRows, legacyCounts)

	resp, err := svc.List(context.Background(), &models.ListFilter{Statuses: []string{"PENDING_INFO"}})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "LEG-1", resp.Rows[0].AppID)
	assert.Equal(t, models.StatusPendingInfo, resp.Rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_MigratedTwinStaysHiddenUnderStatusFilter(t *testing.T) {
	svc, mock := newListingService(t)

	// The base copy of APP-10 is UNDER_REVIEW, so the PENDING_INFO filter
	// removes it in SQL; its legacy twin must not reappear in its place
	mock.ExpectQuery("FROM SP_APPLICATION").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	mock.ExpectQuery("SELECT APP_ID FROM SP_APPLICATION").
		WillReturnRows(sqlmock.NewRows([]string{"APP_ID"}).AddRow("APP-10"))

	legacyList := sqlmock.NewRows(legacyColumns).
		AddRow("APP-10", "Omar Said", "omar@example.com", "old migrated record", "CORRECTIONS_REQUESTED",
			nil, nil, nil, int64(1600000000000), int64(1600000000000)).
		AddRow("LEG-1", "Mariam Ali", "mariam@example.com", "solar panel audit", "CORRECTIONS_REQUESTED",
			nil, nil, nil, int64(1500000000000), int64(1500000000000))
	mock.ExpectQuery("FROM SP_LEGACY_ESG_APPLICATION").WillReturnRows(legacyList)

	kindRows, statusRows, legacyCounts := emptyFacetRows()
	expectFacetQueries(mock, kindRows, statusRows, legacyCounts)

	resp, err := svc.List(context.Background(), &models.ListFilter{Statuses: []string{"PENDING_INFO"}})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "LEG-1", resp.Rows[0].AppID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_KindFilterSkipsLegacyFamily(t *testing.T) {
	svc, mock := newListingService(t)

	baseRows := sqlmock.NewRows(applicationColumns).AddRow(
		"APP-20", "promotional_deal", "SUBMITTED", "Hessa Omran", "hessa@example.com",
		nil, int64(1700000000000), int64(1700000000000), nil, nil, nil, nil,
	)
	mock.ExpectQuery("FROM SP_APPLICATION").WillReturnRows(baseRows)

	dealRows := sqlmock.NewRows([]string{
		"APP_ID", "DEAL_ID", "DEAL_TITLE", "VOUCHER_CODE", "FULFILLED_TIME",
	}).AddRow("APP-20", "DL-3", "Free shipping week", "VCH-AB12CD34", nil)
	mock.ExpectQuery("FROM SP_DEAL_EXTENSION").WillReturnRows(dealRows)

	// No legacy listing query; only the facet counts touch the legacy table
	kindRows, statusRows, legacyCounts := emptyFacetRows()
	kindRows.AddRow("promotional_deal", 1)
	statusRows.AddRow("SUBMITTED", 1)
	expectFacetQueries(mock, kindRows, statusRows, legacyCounts)

	resp, err := svc.List(context.Background(), &models.ListFilter{ServiceKinds: []string{"promotional_deal"}})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Deal claim: Free shipping week", resp.Rows[0].Summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_PaginationOverMergedSet(t *testing.T) {
	svc, mock := newListingService(t)

	baseRows := sqlmock.NewRows(applicationColumns).
		AddRow("APP-1", "knowledge_sharing", "SUBMITTED", "A One", "a@example.com",
			nil, int64(3000), int64(3000), nil, nil, nil, nil).
		AddRow("APP-2", "knowledge_sharing", "SUBMITTED", "B Two", "b@example.com",
			nil, int64(2000), int64(2000), nil, nil, nil, nil)
	mock.ExpectQuery("FROM SP_APPLICATION").WillReturnRows(baseRows)

	extRows := sqlmock.NewRows([]string{
		"APP_ID", "REQUEST_TYPE", "PROGRAM_ID", "PROGRAM_NAME", "SESSION_DATE",
		"ATTENDEE_COUNT", "QUERY_TEXT", "STAFF_RESPONSE", "RESPONDED_TIME",
	}).
		AddRow("APP-1", "session_booking", "PRG-1", "Trade Finance", nil, nil, nil, nil, nil).
		AddRow("APP-2", "session_booking", "PRG-2", "Customs Briefing", nil, nil, nil, nil, nil)
	mock.ExpectQuery("FROM SP_KNOWLEDGE_EXTENSION").WillReturnRows(extRows)

	mock.ExpectQuery("SELECT APP_ID FROM SP_APPLICATION").
		WillReturnRows(sqlmock.NewRows([]string{"APP_ID"}).AddRow("APP-1").AddRow("APP-2"))

	legacyList := sqlmock.NewRows(legacyColumns).
		AddRow("LEG-1", "C Three", "c@example.com", "audit", "SUBMITTED",
			nil, nil, nil, int64(1000), int64(1000))
	mock.ExpectQuery("FROM SP_LEGACY_ESG_APPLICATION").WillReturnRows(legacyList)

	kindRows, statusRows, legacyCounts := emptyFacetRows()
	expectFacetQueries(mock, kindRows, statusRows, legacyCounts)

	resp, err := svc.List(context.Background(), &models.ListFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.Page)
	require.Len(t, resp.Rows, 1)
	// Default order is submission time descending, so the oldest row fills the last page
	assert.Equal(t, "LEG-1", resp.Rows[0].AppID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_SortByApplicantAscending(t *testing.T) {
	svc, mock := newListingService(t)

	baseRows := sqlmock.NewRows(applicationColumns).
		AddRow("APP-1", "promotional_deal", "SUBMITTED", "zainab", "z@example.com",
			nil, int64(3000), int64(3000), nil, nil, nil, nil).
		AddRow("APP-2", "promotional_deal", "SUBMITTED", "Adel", "a@example.com",
			nil, int64(2000), int64(2000), nil, nil, nil, nil)
	mock.ExpectQuery("FROM SP_APPLICATION").WillReturnRows(baseRows)

	dealRows := sqlmock.NewRows([]string{
		"APP_ID", "DEAL_ID", "DEAL_TITLE", "VOUCHER_CODE", "FULFILLED_TIME",
	}).
		AddRow("APP-1", "DL-1", "Deal one", "VCH-1", nil).
		AddRow("APP-2", "DL-2", "Deal two", "VCH-2", nil)
	mock.ExpectQuery("FROM SP_DEAL_EXTENSION").WillReturnRows(dealRows)

	kindRows, statusRows, legacyCounts := emptyFacetRows()
	expectFacetQueries(mock, kindRows, statusRows, legacyCounts)

	filter := &models.ListFilter{
		ServiceKinds: []string{"promotional_deal"},
		SortBy:       models.SortByApplicant,
		SortOrder:    "asc",
	}
	resp, err := svc.List(context.Background(), filter)
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Adel", resp.Rows[0].ApplicantName)
	assert.Equal(t, "zainab", resp.Rows[1].ApplicantName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
