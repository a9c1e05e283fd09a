package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"YenMetrics/internal/domain/models"
	"YenMetrics/internal/usecase"
	xlogger "YenMetrics/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler(t *testing.T, snap *models.MetricsSnapshot) (*MetricsHandler, *echo.Echo) {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	svc := usecase.NewSnapshotService(nil, nil, 0)
	if snap != nil {
		svc.Publish(snap)
	}

	h := NewMetricsHandler(l, svc)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func testSnapshot() *models.MetricsSnapshot {
	return &models.MetricsSnapshot{
		AsOf:        time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC),
		DataVersion: "2025/11/21",
		RateResult: models.RateProbabilityResult{
			PHike:     0.3,
			PNoChange: 0.7,
		},
		CreditProfiles: []models.IssuerCreditProfile{
			{IssuerID: "6501", PD5Y: 0.054},
			{IssuerID: "8306", PD5Y: 0.027},
		},
	}
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestSnapshotEndpoint(t *testing.T) {
	_, e := testHandler(t, testSnapshot())

	rec := doGet(e, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusOK, env.Status)

	var snap models.MetricsSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "2025/11/21", snap.DataVersion)
	require.Len(t, snap.CreditProfiles, 2)
}

func TestSnapshotEndpointColdStart(t *testing.T) {
	_, e := testHandler(t, nil)

	rec := doGet(e, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func TestSnapshotHistoryEndpoint(t *testing.T) {
	_, e := testHandler(t, testSnapshot())

	rec := doGet(e, "/api/snapshot/history?version=2025%2F11%2F21")
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusOK, env.Status)

	// Missing version fails validation.
	rec = doGet(e, "/api/snapshot/history")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)

	// Unknown version without a store is a 404.
	rec = doGet(e, "/api/snapshot/history?version=2024%2F01%2F01")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func TestRateEndpoint(t *testing.T) {
	_, e := testHandler(t, testSnapshot())

	rec := doGet(e, "/api/rate")
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, http.StatusOK, env.Status)

	var res models.RateProbabilityResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.InDelta(t, 0.3, res.PHike, 1e-12)
	assert.InDelta(t, 0.7, res.PNoChange, 1e-12)
}

func TestCreditEndpoint(t *testing.T) {
	_, e := testHandler(t, testSnapshot())

	rec := doGet(e, "/api/credit?limit=1")
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, http.StatusOK, env.Status)

	var list struct {
		Rows  []models.IssuerCreditProfile `json:"rows"`
		Total int64                        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "6501", list.Rows[0].IssuerID, "ranking order survives truncation")
	assert.Equal(t, int64(2), list.Total)
}

func TestCreditEndpointLimitValidation(t *testing.T) {
	_, e := testHandler(t, testSnapshot())

	// A zero limit is rewritten to the default before validation, so only
	// an out-of-range positive value can fail.
	rec := doGet(e, "/api/credit?limit=600")
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}
