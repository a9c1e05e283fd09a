package pricing

import (
	"math"
	"sort"

	"YenMetrics/internal/domain/models"
)

// Curve is a deterministic lookup over government benchmark yields.
// Lookups between knots are linearly interpolated; maturities outside the
// observed range fail rather than extrapolate.
type Curve struct {
	points []models.GovernmentCurvePoint
}

// NewCurve builds a curve from benchmark points. The input is copied and
// sorted; at least two distinct maturities are required.
func NewCurve(points []models.GovernmentCurvePoint) (*Curve, error) {
	if len(points) < 2 {
		return nil, &models.DataValidationError{Field: "jgb_curve", Reason: "need at least two points"}
	}
	ps := make([]models.GovernmentCurvePoint, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool { return ps[i].MaturityYears < ps[j].MaturityYears })
	for i, p := range ps {
		if p.MaturityYears <= 0 {
			return nil, &models.DataValidationError{Field: "jgb_curve", Reason: "non-positive maturity"}
		}
		if math.IsNaN(p.Yield) || math.IsInf(p.Yield, 0) {
			return nil, &models.DataValidationError{Field: "jgb_curve", Reason: "non-finite yield"}
		}
		if i > 0 && ps[i-1].MaturityYears == p.MaturityYears {
			return nil, &models.DataValidationError{Field: "jgb_curve", Reason: "duplicate maturity"}
		}
	}
	return &Curve{points: ps}, nil
}

// MinMaturity returns the shortest maturity on the curve.
func (c *Curve) MinMaturity() float64 { return c.points[0].MaturityYears }

// MaxMaturity returns the longest maturity on the curve.
func (c *Curve) MaxMaturity() float64 { return c.points[len(c.points)-1].MaturityYears }

// Yield returns the government yield at the given maturity. Exact knots are
// returned directly; in-between maturities are linearly interpolated.
func (c *Curve) Yield(maturityYears float64) (float64, error) {
	if maturityYears < c.MinMaturity() || maturityYears > c.MaxMaturity() {
		return 0, &models.CurveLookupError{
			MaturityYears: maturityYears,
			Min:           c.MinMaturity(),
			Max:           c.MaxMaturity(),
		}
	}
	i := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].MaturityYears >= maturityYears
	})
	p := c.points[i]
	if p.MaturityYears == maturityYears {
		return p.Yield, nil
	}
	lo := c.points[i-1]
	w := (maturityYears - lo.MaturityYears) / (p.MaturityYears - lo.MaturityYears)
	return lo.Yield + w*(p.Yield-lo.Yield), nil
}
