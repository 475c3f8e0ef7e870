package http

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facilityworks/industrial-dashboard/internal/service"
)

func setupApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	app := fiber.New()
	Register(app, service.New(sqlxDB))

	return app, mock, func() { sqlxDB.Close() }
}

func TestSensorReadings_LimitOutOfRange(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	for _, limit := range []string{"0", "5001", "-1", "abc"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/sensor-readings?limit="+limit, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "limit=%s", limit)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorReadings_SplitCursor(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	resp, err := app.Test(httptest.NewRequest("GET",
		"/sensor-readings?after_ts=2026-03-01T12:00:00Z", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/sensor-readings?after_id=7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorReadings_InvalidRange(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	resp, err := app.Test(httptest.NewRequest("GET",
		"/sensor-readings?start=2026-03-02T00:00:00Z&end=2026-03-01T00:00:00Z", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorReadings_MalformedTimestamp(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	resp, err := app.Test(httptest.NewRequest("GET", "/sensor-readings?start=yesterday", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorReadings_Success(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM sensor_readings`).
		WithArgs(int64(1), 500).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "facility_id", "asset_id", "asset_name",
			"metric_id", "metric_name", "unit", "ts", "value",
		}).AddRow(int64(2), int64(1), int64(10), "Compressor A", int64(5), "power_kw", "kW", ts, 42.5))

	resp, err := app.Test(httptest.NewRequest("GET", "/sensor-readings?facility_id=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "Compressor A", body[0]["asset_name"])
	assert.Equal(t, "power_kw", body[0]["metric_name"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacilityDetails_NotFound(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	mock.ExpectQuery(`SELECT id, name, location, created_at FROM facilities`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	resp, err := app.Test(httptest.NewRequest("GET", "/facilities/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFacilities_StorageUnavailable(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	mock.ExpectQuery(`FROM facilities`).WillReturnError(assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/facilities", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func expectDashboardQueries(mock sqlmock.Sqlmock, facilityID int64) {
	mock.ExpectQuery(`SELECT id, name, location, created_at FROM facilities`).
		WithArgs(facilityID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "created_at"}).
			AddRow(facilityID, "North Plant", "Hamburg", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(`SELECT DISTINCT ON`).
		WithArgs(facilityID).
		WillReturnRows(sqlmock.NewRows([]string{"asset_id", "metric_id", "metric_name", "unit", "ts", "value"}).
			AddRow(int64(10), int64(1), "power_kw", "kW", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), 40.0))
}

func TestDashboardSummary_ConditionalRoundTrip(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	expectDashboardQueries(mock, 1)
	resp, err := app.Test(httptest.NewRequest("GET", "/facilities/1/dashboard-summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "private, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))

	token := resp.Header.Get(fiber.HeaderETag)
	require.NotEmpty(t, token)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["facility_id"])

	// Re-request with the validator: identical content, 304, no body.
	expectDashboardQueries(mock, 1)
	req := httptest.NewRequest("GET", "/facilities/1/dashboard-summary", nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotModified, resp.StatusCode)
	assert.Equal(t, token, resp.Header.Get(fiber.HeaderETag))
	assert.Equal(t, "private, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, raw)

	// A stale validator still gets the full payload.
	expectDashboardQueries(mock, 1)
	req = httptest.NewRequest("GET", "/facilities/1/dashboard-summary", nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, `"deadbeef"`)

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSummary_WildcardValidator(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	expectDashboardQueries(mock, 1)
	req := httptest.NewRequest("GET", "/facilities/1/dashboard-summary", nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, "*")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotModified, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSummary_UnknownFacility(t *testing.T) {
	app, mock, teardown := setupApp(t)
	defer teardown()

	mock.ExpectQuery(`SELECT id, name, location, created_at FROM facilities`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	resp, err := app.Test(httptest.NewRequest("GET", "/facilities/99/dashboard-summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	require.NoError(t, mock.ExpectationsWereMet())
}
