package pricing

import (
	"math"
	"sort"

	"YenMetrics/internal/domain/models"
)

// DefaultRecoveryRate is the assumed fraction of face value recovered in
// default when none is configured.
const DefaultRecoveryRate = 0.10

// DefaultPDHorizons are the horizons (years) the PD term structure is
// reported at. Five years is the canonical ranking horizon.
var DefaultPDHorizons = []int{1, 3, 5, 10}

// CreditModel infers per-issuer hazard rates and a default-probability term
// structure from credit spreads versus the government benchmark curve.
// A single flat hazard rate approximates each issuer; spreads and
// maturities are averaged arithmetically across the issuer's bonds.
type CreditModel struct {
	recovery float64
	horizons []int
}

func NewCreditModel(recoveryRate float64, horizons []int) (*CreditModel, error) {
	if recoveryRate < 0 || recoveryRate >= 1 {
		return nil, &models.DataValidationError{Field: "recovery_rate", Reason: "must be in [0,1)"}
	}
	if len(horizons) == 0 {
		horizons = DefaultPDHorizons
	}
	hs := make([]int, len(horizons))
	copy(hs, horizons)
	sort.Ints(hs)
	has5 := false
	for _, h := range hs {
		if h == 5 {
			has5 = true
		}
	}
	if !has5 {
		hs = append(hs, 5)
		sort.Ints(hs)
	}
	return &CreditModel{recovery: recoveryRate, horizons: hs}, nil
}

// PD is the cumulative default probability by horizon T under a constant
// hazard rate: PD(T) = 1 - exp(-lambda*T).
func (m *CreditModel) PD(lambda, years float64) float64 {
	return 1 - math.Exp(-lambda*years)
}

// Profile derives the credit view for one issuer from its bond quotes.
func (m *CreditModel) Profile(issuerID string, quotes []models.BondQuote, curve *Curve) (models.IssuerCreditProfile, error) {
	if len(quotes) == 0 {
		return models.IssuerCreditProfile{}, &models.UnknownIssuerError{IssuerID: issuerID}
	}

	var sumSpread, sumMaturity float64
	for _, q := range quotes {
		govYield, err := curve.Yield(q.MaturityYears)
		if err != nil {
			return models.IssuerCreditProfile{}, err
		}
		sumSpread += q.Yield - govYield
		sumMaturity += q.MaturityYears
	}
	n := float64(len(quotes))
	spread := sumSpread / n

	// spread ~= LGD * lambda; negative spreads are a data anomaly and
	// clamp the hazard to zero rather than report a negative intensity.
	lambda := spread / (1 - m.recovery)
	negative := lambda < 0
	if negative {
		lambda = 0
	}

	pdCurve := make(map[int]float64, len(m.horizons))
	for _, h := range m.horizons {
		pdCurve[h] = m.PD(lambda, float64(h))
	}

	return models.IssuerCreditProfile{
		IssuerID:         issuerID,
		Bonds:            len(quotes),
		AvgMaturityYears: sumMaturity / n,
		Spread:           spread,
		SpreadBps:        spread * 10000,
		HazardRate:       lambda,
		PD5Y:             pdCurve[5],
		PDCurve:          pdCurve,
		NegativeSpread:   negative,
	}, nil
}

// Profiles derives and ranks credit profiles for every issuer present in
// the quote set. Ranking is by five-year PD descending, issuer id ascending
// on ties, so repeated calls over identical input return identical order.
func (m *CreditModel) Profiles(quotes []models.BondQuote, curvePoints []models.GovernmentCurvePoint) ([]models.IssuerCreditProfile, error) {
	curve, err := NewCurve(curvePoints)
	if err != nil {
		return nil, err
	}
	byIssuer := make(map[string][]models.BondQuote)
	order := make([]string, 0)
	for _, q := range quotes {
		if _, seen := byIssuer[q.IssuerID]; !seen {
			order = append(order, q.IssuerID)
		}
		byIssuer[q.IssuerID] = append(byIssuer[q.IssuerID], q)
	}

	profiles := make([]models.IssuerCreditProfile, 0, len(order))
	for _, id := range order {
		p, err := m.Profile(id, byIssuer[id], curve)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].PD5Y != profiles[j].PD5Y {
			return profiles[i].PD5Y > profiles[j].PD5Y
		}
		return profiles[i].IssuerID < profiles[j].IssuerID
	})
	return profiles, nil
}
