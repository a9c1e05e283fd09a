package models

import "time"

// OISQuote is one point on the overnight-index-swap curve.
// Rate is annualized, decimal form (0.0025 == 25bp).
type OISQuote struct {
	TenorDays int     `json:"tenor_days"`
	Rate      float64 `json:"rate"`
}

// PolicyMeeting is the next scheduled BoJ policy decision.
type PolicyMeeting struct {
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"days_until"`
}

// RateProbabilityResult is the market-implied outcome distribution for the
// next policy meeting. PHike/PCut/PNoChange are clipped to [0,1]; the raw
// pre-clip values are kept so callers can see how far outside the range the
// market data landed.
type RateProbabilityResult struct {
	MeetingDate   time.Time `json:"next_meeting_date"`
	DaysToMeeting int       `json:"days_to_meeting"`
	CurrentRate   float64   `json:"current_rate"`
	ImpliedRate   float64   `json:"implied_rate"`

	PNoChange float64 `json:"p_no_change"`
	PHike     float64 `json:"p_hike"`
	PCut      float64 `json:"p_cut"`

	RawHike     float64 `json:"raw_hike"`
	RawCut      float64 `json:"raw_cut"`
	HikeClamped bool    `json:"hike_clamped"`
	CutClamped  bool    `json:"cut_clamped"`
	// Clamped signals inconsistent input data: some implied probability
	// exceeded its valid range before clipping.
	Clamped bool `json:"clamped"`
	// CrossCheckDelta is the absolute difference between the two no-change
	// derivations (1-p_hike-p_cut vs the one-sided form).
	CrossCheckDelta float64 `json:"cross_check_delta"`
}

// PolicySteps are the policy step magnitudes priced against the next
// meeting, decimal form. Hike must be positive, Cut negative.
type PolicySteps struct {
	Hike float64 `json:"hike"`
	Cut  float64 `json:"cut"`
}

// BondQuote is one corporate bond observation. Yield is decimal form.
type BondQuote struct {
	IssuerID      string  `json:"issuer_id"`
	MaturityYears float64 `json:"maturity_years"`
	Yield         float64 `json:"yield"`
}

// GovernmentCurvePoint is one point on the JGB benchmark curve.
type GovernmentCurvePoint struct {
	MaturityYears float64 `json:"maturity_years"`
	Yield         float64 `json:"yield"`
}

// IssuerCreditProfile is the derived credit view of one issuer. Rebuilt in
// full on every evaluation; never mutated incrementally.
type IssuerCreditProfile struct {
	IssuerID         string  `json:"issuer_id"`
	Bonds            int     `json:"n_bonds"`
	AvgMaturityYears float64 `json:"avg_maturity_years"`
	Spread           float64 `json:"spread"`
	SpreadBps        float64 `json:"spread_bps"`
	HazardRate       float64 `json:"hazard_rate"`
	PD5Y             float64 `json:"pd_5y"`
	// PDCurve maps horizon in years to cumulative default probability.
	PDCurve map[int]float64 `json:"pd_curve"`
	// NegativeSpread marks the corporate-below-government anomaly; the
	// hazard rate is clamped to zero in that case, not reported negative.
	NegativeSpread bool `json:"negative_spread"`
}

// MarketInputs is the adapter's validated, typed output consumed by the
// pricing models. OISQuotes and Curve are sorted ascending.
type MarketInputs struct {
	SourceDate string
	SourceTime time.Time
	OISQuotes  []OISQuote
	Meeting    PolicyMeeting
	Bonds      []BondQuote
	Curve      []GovernmentCurvePoint
}

// MetricsSnapshot is the single artifact exposed to the presentation layer.
// Immutable once produced; each evaluation builds a fresh one.
type MetricsSnapshot struct {
	AsOf           time.Time             `json:"as_of"`
	DataVersion    string                `json:"data_version"`
	RateResult     RateProbabilityResult `json:"rate_result"`
	CreditProfiles []IssuerCreditProfile `json:"credit_profiles"`
}
