package marketdata

import (
	"testing"
	"time"

	"YenMetrics/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() *models.RawMarketData {
	return &models.RawMarketData{
		UpdatedAt:   "2025-11-21T09:00:00Z",
		SourceDate:  "2025/11/21",
		SourceURL:   "https://example.com/market",
		Rates: []models.RawRate{
			{Tenor: "1W", Rate: 0.10},
			{Tenor: "3M", Rate: 0.15},
			{Tenor: "6M", Rate: 0.20},
		},
		BojMeetings: []string{"2025-10-30", "2025-12-19", "2026-01-23"},
		JGBCurve: []models.RawCurvePoint{
			{Tenor: "1Y", Rate: 0.50},
			{Tenor: "5Y", Rate: 1.00},
			{Tenor: "10Y", Rate: 1.50},
		},
		Bonds: []models.RawBond{
			{Issuer: "6501", MaturityYears: 5, Yield: 2.00},
		},
	}
}

func TestNormalize(t *testing.T) {
	a := NewAdapter()
	now := time.Date(2025, 11, 21, 12, 0, 0, 0, time.UTC)

	in, err := a.Normalize(validRaw(), now)
	require.NoError(t, err)

	// Percent to decimal on every collection.
	require.Len(t, in.OISQuotes, 3)
	assert.Equal(t, 7, in.OISQuotes[0].TenorDays)
	assert.InDelta(t, 0.001, in.OISQuotes[0].Rate, 1e-12)
	assert.InDelta(t, 0.005, in.Curve[0].Yield, 1e-12)
	assert.InDelta(t, 0.020, in.Bonds[0].Yield, 1e-12)

	// Quotes sorted ascending by tenor.
	for i := 1; i < len(in.OISQuotes); i++ {
		assert.Greater(t, in.OISQuotes[i].TenorDays, in.OISQuotes[i-1].TenorDays)
	}

	// First meeting strictly after the source date, not the past one.
	assert.Equal(t, time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC), in.Meeting.Date)
	assert.Equal(t, 28, in.Meeting.DaysUntil)
	assert.Equal(t, "2025/11/21", in.SourceDate)
}

func TestNormalizeFallsBackToNow(t *testing.T) {
	a := NewAdapter()
	now := time.Date(2025, 12, 1, 15, 30, 0, 0, time.UTC)

	raw := validRaw()
	raw.SourceDate = "freshness unknown"

	in, err := a.Normalize(raw, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), in.SourceTime)
	assert.Equal(t, time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC), in.Meeting.Date)
}

func TestNormalizeRejectsMissingFields(t *testing.T) {
	a := NewAdapter()
	now := time.Now().UTC()
	var valErr *models.DataValidationError

	_, err := a.Normalize(nil, now)
	require.ErrorAs(t, err, &valErr)

	raw := validRaw()
	raw.SourceDate = ""
	_, err = a.Normalize(raw, now)
	require.ErrorAs(t, err, &valErr)

	raw = validRaw()
	raw.Rates = raw.Rates[:1]
	_, err = a.Normalize(raw, now)
	require.ErrorAs(t, err, &valErr)

	raw = validRaw()
	raw.JGBCurve = nil
	_, err = a.Normalize(raw, now)
	require.ErrorAs(t, err, &valErr)
}

func TestNormalizeRejectsDuplicateTenor(t *testing.T) {
	a := NewAdapter()
	raw := validRaw()
	raw.Rates = append(raw.Rates, models.RawRate{Tenor: "7D", Rate: 0.11}) // same days as 1W

	_, err := a.Normalize(raw, time.Now().UTC())
	var valErr *models.DataValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "rates.tenor", valErr.Field)
}

func TestNormalizeRejectsBadTenor(t *testing.T) {
	a := NewAdapter()
	raw := validRaw()
	raw.Rates[1].Tenor = "3Q"

	_, err := a.Normalize(raw, time.Now().UTC())
	var valErr *models.DataValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestNormalizeMissingMeeting(t *testing.T) {
	a := NewAdapter()
	raw := validRaw()
	raw.BojMeetings = []string{"2025-10-30"} // all in the past

	_, err := a.Normalize(raw, time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC))
	var meetErr *models.MissingMeetingError
	require.ErrorAs(t, err, &meetErr)
	assert.Equal(t, "2025/11/21", meetErr.SourceDate)
}

func TestNormalizeBadMeetingDate(t *testing.T) {
	a := NewAdapter()
	raw := validRaw()
	raw.BojMeetings = []string{"19-12-2025"}

	_, err := a.Normalize(raw, time.Now().UTC())
	var valErr *models.DataValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestNormalizeBondValidation(t *testing.T) {
	a := NewAdapter()
	raw := validRaw()
	raw.Bonds[0].MaturityYears = 0

	_, err := a.Normalize(raw, time.Now().UTC())
	var valErr *models.DataValidationError
	require.ErrorAs(t, err, &valErr)
}
