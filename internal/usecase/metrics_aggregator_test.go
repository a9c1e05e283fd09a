package usecase

import (
	"encoding/json"
	"testing"
	"time"

	"YenMetrics/internal/domain/models"
	"YenMetrics/internal/services/marketdata"
	"YenMetrics/internal/services/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAggregator(t *testing.T) *MetricsAggregator {
	t.Helper()
	credit, err := pricing.NewCreditModel(pricing.DefaultRecoveryRate, nil)
	require.NoError(t, err)
	return NewMetricsAggregator(
		marketdata.NewAdapter(),
		pricing.NewRateModel(),
		credit,
		models.PolicySteps{Hike: 0.0025, Cut: -0.0025},
		nil,
	)
}

func rawDocument() *models.RawMarketData {
	return &models.RawMarketData{
		SourceDate: "2025/11/21",
		Rates: []models.RawRate{
			{Tenor: "1W", Rate: 0.10},
			{Tenor: "3M", Rate: 0.15},
		},
		BojMeetings: []string{"2025-12-19"},
		JGBCurve: []models.RawCurvePoint{
			{Tenor: "1Y", Rate: 0.50},
			{Tenor: "10Y", Rate: 1.50},
		},
		Bonds: []models.RawBond{
			{Issuer: "6501", MaturityYears: 5, Yield: 2.00},
			{Issuer: "8306", MaturityYears: 5, Yield: 1.50},
		},
	}
}

func TestEvaluateComposesSnapshot(t *testing.T) {
	agg := newAggregator(t)
	asOf := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

	snap, err := agg.Evaluate(rawDocument(), asOf)
	require.NoError(t, err)

	assert.Equal(t, asOf, snap.AsOf)
	assert.Equal(t, "2025/11/21", snap.DataVersion)
	assert.Equal(t, 28, snap.RateResult.DaysToMeeting)
	require.Len(t, snap.CreditProfiles, 2)

	// Wider spread ranks first.
	assert.Equal(t, "6501", snap.CreditProfiles[0].IssuerID)
	assert.Equal(t, "8306", snap.CreditProfiles[1].IssuerID)
	assert.Greater(t, snap.CreditProfiles[0].PD5Y, snap.CreditProfiles[1].PD5Y)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	agg := newAggregator(t)
	asOf := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

	a, err := agg.Evaluate(rawDocument(), asOf)
	require.NoError(t, err)
	b, err := agg.Evaluate(rawDocument(), asOf)
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(ja), string(jb))
}

func TestEvaluateFailsAtomically(t *testing.T) {
	agg := newAggregator(t)
	asOf := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

	// Credit-side failure: bond maturity outside the benchmark curve. No
	// snapshot may come back, not even a rate-only one.
	raw := rawDocument()
	raw.Bonds = append(raw.Bonds, models.RawBond{Issuer: "9432", MaturityYears: 30, Yield: 2.5})

	snap, err := agg.Evaluate(raw, asOf)
	require.Error(t, err)
	assert.Nil(t, snap)
	var lookErr *models.CurveLookupError
	require.ErrorAs(t, err, &lookErr)
}

func TestEvaluatePropagatesTypedErrors(t *testing.T) {
	agg := newAggregator(t)
	asOf := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)

	raw := rawDocument()
	raw.BojMeetings = nil
	_, err := agg.Evaluate(raw, asOf)
	var meetErr *models.MissingMeetingError
	require.ErrorAs(t, err, &meetErr)

	raw = rawDocument()
	raw.Rates = []models.RawRate{
		{Tenor: "1D", Rate: 0.10},
		{Tenor: "1W", Rate: 0.11},
	}
	_, err = agg.Evaluate(raw, asOf)
	var tenorErr *models.InvalidTenorError
	require.ErrorAs(t, err, &tenorErr)
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{&models.DataValidationError{}, "data_validation"},
		{&models.MissingMeetingError{}, "missing_meeting"},
		{&models.InvalidTenorError{}, "invalid_tenor"},
		{&models.InvalidStepSizeError{}, "invalid_step_size"},
		{&models.UnknownIssuerError{}, "unknown_issuer"},
		{&models.CurveLookupError{}, "curve_lookup"},
		{assert.AnError, "other"},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, errorKind(c.err))
	}
}
