package marketdata

import (
	"math"
	"sort"
	"time"

	"YenMetrics/internal/domain/models"
	"YenMetrics/pkg/util"

	"github.com/go-playground/validator/v10"
)

// Adapter validates and normalizes the raw ingest document into the typed
// inputs the pricing models consume. Pure transformation; no side effects
// and no state shared across calls.
type Adapter struct {
	validate *validator.Validate
}

func NewAdapter() *Adapter {
	return &Adapter{validate: validator.New()}
}

// Normalize converts a raw market-data document (rates and yields in
// percent) into decimal-form typed collections. now is used only when the
// document carries no parseable source date.
func (a *Adapter) Normalize(raw *models.RawMarketData, now time.Time) (*models.MarketInputs, error) {
	if raw == nil {
		return nil, &models.DataValidationError{Field: "document", Reason: "missing"}
	}
	if err := a.validate.Struct(raw); err != nil {
		return nil, &models.DataValidationError{Field: "document", Reason: err.Error()}
	}

	sourceTime, ok := util.ParseSourceDate(raw.SourceDate)
	if !ok {
		sourceTime = now.UTC().Truncate(24 * time.Hour)
	}

	quotes, err := a.normalizeOIS(raw.Rates, sourceTime)
	if err != nil {
		return nil, err
	}

	meeting, err := a.nextMeeting(raw.BojMeetings, sourceTime, raw.SourceDate)
	if err != nil {
		return nil, err
	}

	curve, err := a.normalizeCurve(raw.JGBCurve)
	if err != nil {
		return nil, err
	}

	bonds, err := a.normalizeBonds(raw.Bonds)
	if err != nil {
		return nil, err
	}

	return &models.MarketInputs{
		SourceDate: raw.SourceDate,
		SourceTime: sourceTime,
		OISQuotes:  quotes,
		Meeting:    meeting,
		Bonds:      bonds,
		Curve:      curve,
	}, nil
}

func (a *Adapter) normalizeOIS(rates []models.RawRate, ref time.Time) ([]models.OISQuote, error) {
	quotes := make([]models.OISQuote, 0, len(rates))
	seen := make(map[int]bool, len(rates))
	for _, r := range rates {
		days, err := util.TenorDays(r.Tenor, ref)
		if err != nil {
			return nil, &models.DataValidationError{Field: "rates.tenor", Reason: err.Error()}
		}
		if days < 0 {
			return nil, &models.DataValidationError{Field: "rates.tenor", Reason: "negative tenor"}
		}
		if math.IsNaN(r.Rate) || math.IsInf(r.Rate, 0) {
			return nil, &models.DataValidationError{Field: "rates.rate", Reason: "non-finite rate"}
		}
		if seen[days] {
			return nil, &models.DataValidationError{Field: "rates.tenor", Reason: "duplicate tenor " + r.Tenor}
		}
		seen[days] = true
		quotes = append(quotes, models.OISQuote{TenorDays: days, Rate: r.Rate / 100})
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].TenorDays < quotes[j].TenorDays })
	return quotes, nil
}

func (a *Adapter) nextMeeting(meetings []string, ref time.Time, sourceDate string) (models.PolicyMeeting, error) {
	var next time.Time
	for _, s := range meetings {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return models.PolicyMeeting{}, &models.DataValidationError{Field: "boj_meetings", Reason: "bad date " + s}
		}
		if d.After(ref) && (next.IsZero() || d.Before(next)) {
			next = d
		}
	}
	if next.IsZero() {
		return models.PolicyMeeting{}, &models.MissingMeetingError{SourceDate: sourceDate}
	}
	days := int(next.Sub(ref).Hours() / 24)
	return models.PolicyMeeting{Date: next, DaysUntil: days}, nil
}

func (a *Adapter) normalizeCurve(points []models.RawCurvePoint) ([]models.GovernmentCurvePoint, error) {
	curve := make([]models.GovernmentCurvePoint, 0, len(points))
	for _, p := range points {
		years, err := util.TenorYears(p.Tenor)
		if err != nil {
			return nil, &models.DataValidationError{Field: "jgb_curve.tenor", Reason: err.Error()}
		}
		if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
			return nil, &models.DataValidationError{Field: "jgb_curve.rate", Reason: "non-finite yield"}
		}
		curve = append(curve, models.GovernmentCurvePoint{MaturityYears: years, Yield: p.Rate / 100})
	}
	sort.Slice(curve, func(i, j int) bool { return curve[i].MaturityYears < curve[j].MaturityYears })
	return curve, nil
}

func (a *Adapter) normalizeBonds(bonds []models.RawBond) ([]models.BondQuote, error) {
	quotes := make([]models.BondQuote, 0, len(bonds))
	for _, b := range bonds {
		if b.MaturityYears <= 0 {
			return nil, &models.DataValidationError{Field: "bonds.maturity_years", Reason: "non-positive maturity"}
		}
		if math.IsNaN(b.Yield) || math.IsInf(b.Yield, 0) {
			return nil, &models.DataValidationError{Field: "bonds.yield", Reason: "non-finite yield"}
		}
		quotes = append(quotes, models.BondQuote{
			IssuerID:      b.Issuer,
			MaturityYears: b.MaturityYears,
			Yield:         b.Yield / 100,
		})
	}
	return quotes, nil
}
