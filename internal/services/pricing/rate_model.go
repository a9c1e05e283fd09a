package pricing

import (
	"math"

	"YenMetrics/internal/domain/models"
)

// RateModel infers the market-implied probability of a policy move at the
// next meeting from OIS rates spanning the decision date. Purely functional;
// safe for concurrent use.
type RateModel struct{}

func NewRateModel() *RateModel { return &RateModel{} }

// ImpliedRate solves the blended-rate identity
// r_post = (r_pre*D_pre + E[r]*D_post) / (D_pre + D_post)
// for the expected post-meeting short rate E[r].
func (m *RateModel) ImpliedRate(rPre, rPost float64, dPre, dPost int) (float64, error) {
	if dPost <= 0 {
		return 0, &models.InvalidTenorError{TenorDays: dPre + dPost, DaysUntil: dPre}
	}
	return (rPost*float64(dPre+dPost) - rPre*float64(dPre)) / float64(dPost), nil
}

// StepProbability converts an expected post-meeting rate into the implied
// probability of a move of the given step size. The raw value is returned
// unclipped alongside the [0,1]-clipped probability.
func (m *RateModel) StepProbability(impliedRate, rPre, step float64) (p, raw float64, err error) {
	if step == 0 {
		return 0, 0, &models.InvalidStepSizeError{Step: step}
	}
	raw = (impliedRate - rPre) / step
	p = clamp01(raw)
	return p, raw, nil
}

// Probabilities prices the hike and cut scenarios against the next meeting
// and derives the no-change remainder. The shortest OIS tenor proxies the
// current overnight rate; the post-meeting anchor is the first quote whose
// tenor extends strictly past the meeting date.
func (m *RateModel) Probabilities(quotes []models.OISQuote, meeting models.PolicyMeeting, steps models.PolicySteps) (models.RateProbabilityResult, error) {
	var res models.RateProbabilityResult
	if len(quotes) == 0 {
		return res, &models.DataValidationError{Field: "rates", Reason: "empty OIS curve"}
	}
	if steps.Hike <= 0 || steps.Cut >= 0 {
		return res, &models.InvalidStepSizeError{Step: steps.Hike + steps.Cut}
	}

	rPre := quotes[0].Rate
	dPre := meeting.DaysUntil

	post, ok := findPostMeetingQuote(quotes, dPre)
	if !ok {
		last := quotes[len(quotes)-1]
		return res, &models.InvalidTenorError{TenorDays: last.TenorDays, DaysUntil: dPre}
	}
	dPost := post.TenorDays - dPre

	eR, err := m.ImpliedRate(rPre, post.Rate, dPre, dPost)
	if err != nil {
		return res, err
	}

	pHike, rawHike, err := m.StepProbability(eR, rPre, steps.Hike)
	if err != nil {
		return res, err
	}
	pCut, rawCut, err := m.StepProbability(eR, rPre, steps.Cut)
	if err != nil {
		return res, err
	}

	rawNoChange := 1 - pHike - pCut
	pNoChange := clamp01(rawNoChange)

	res = models.RateProbabilityResult{
		MeetingDate:     meeting.Date,
		DaysToMeeting:   dPre,
		CurrentRate:     rPre,
		ImpliedRate:     eR,
		PNoChange:       pNoChange,
		PHike:           pHike,
		PCut:            pCut,
		RawHike:         rawHike,
		RawCut:          rawCut,
		HikeClamped:     rawHike != pHike,
		CutClamped:      rawCut != pCut,
		Clamped:         rawHike > 1 || rawCut > 1 || rawNoChange != pNoChange,
		CrossCheckDelta: math.Abs(pNoChange - m.noChangeOneSided(rawHike, rawCut)),
	}
	return res, nil
}

// noChangeOneSided is the alternate derivation used by the original
// dashboard: only the direction the market leans toward contributes. Kept
// alongside the two-sided remainder so a disagreement between the two is
// surfaced instead of silently choosing one.
func (m *RateModel) noChangeOneSided(rawHike, rawCut float64) float64 {
	switch {
	case rawHike > 0:
		return 1 - math.Min(rawHike, 1)
	case rawCut > 0:
		return 1 - math.Min(rawCut, 1)
	default:
		return 1
	}
}

func findPostMeetingQuote(quotes []models.OISQuote, daysUntil int) (models.OISQuote, bool) {
	for _, q := range quotes {
		if q.TenorDays > daysUntil {
			return q, true
		}
	}
	return models.OISQuote{}, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
