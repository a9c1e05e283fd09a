package usecase

import (
	"time"

	"YenMetrics/internal/domain/models"
	domrepo "YenMetrics/internal/domain/repository"
	domsvc "YenMetrics/internal/domain/service"
)

// MetricsAggregator runs one full evaluation cycle: adapter -> models ->
// snapshot. Every call builds fresh value objects; nothing is memoized, so
// concurrent evaluations over independent inputs are safe.
type MetricsAggregator struct {
	adapter domsvc.MarketDataAdapter
	rates   domsvc.RateProbabilityModel
	credit  domsvc.CreditRiskModel
	steps   models.PolicySteps
	metrics domrepo.Metrics
}

func NewMetricsAggregator(
	adapter domsvc.MarketDataAdapter,
	rates domsvc.RateProbabilityModel,
	credit domsvc.CreditRiskModel,
	steps models.PolicySteps,
	metrics domrepo.Metrics,
) *MetricsAggregator {
	return &MetricsAggregator{adapter: adapter, rates: rates, credit: credit, steps: steps, metrics: metrics}
}

// Evaluate normalizes the raw document, prices both models, and composes an
// immutable snapshot stamped asOf. Any failure aborts the cycle before a
// snapshot exists, so a previously published snapshot is never half-updated.
func (g *MetricsAggregator) Evaluate(raw *models.RawMarketData, asOf time.Time) (*models.MetricsSnapshot, error) {
	start := time.Now()

	in, err := g.adapter.Normalize(raw, asOf)
	if err != nil {
		g.observeError(err)
		return nil, err
	}

	rateRes, err := g.rates.Probabilities(in.OISQuotes, in.Meeting, g.steps)
	if err != nil {
		g.observeError(err)
		return nil, err
	}

	profiles, err := g.credit.Profiles(in.Bonds, in.Curve)
	if err != nil {
		g.observeError(err)
		return nil, err
	}

	snap := g.BuildSnapshot(rateRes, profiles, asOf, in.SourceDate)

	if g.metrics != nil {
		g.metrics.RecordEvaluation("ok")
		g.metrics.RecordScenarioProbability("hike", rateRes.PHike)
		g.metrics.RecordScenarioProbability("cut", rateRes.PCut)
		g.metrics.RecordScenarioProbability("no_change", rateRes.PNoChange)
		g.metrics.RecordIssuersRanked(len(profiles))
		if rateRes.Clamped {
			g.metrics.RecordClampFlag("rate")
		}
		for _, p := range profiles {
			if p.NegativeSpread {
				g.metrics.RecordClampFlag("credit")
				break
			}
		}
		g.metrics.RecordLatency("evaluate", time.Since(start).Seconds())
	}
	return snap, nil
}

// BuildSnapshot assembles the two model outputs into one snapshot. The
// credit sequence arrives already ranked; composition adds nothing else.
func (g *MetricsAggregator) BuildSnapshot(rate models.RateProbabilityResult, profiles []models.IssuerCreditProfile, asOf time.Time, version string) *models.MetricsSnapshot {
	return &models.MetricsSnapshot{
		AsOf:           asOf,
		DataVersion:    version,
		RateResult:     rate,
		CreditProfiles: profiles,
	}
}

func (g *MetricsAggregator) observeError(err error) {
	if g.metrics == nil {
		return
	}
	g.metrics.RecordEvaluation("error")
	g.metrics.RecordError(errorKind(err))
}

func errorKind(err error) string {
	switch err.(type) {
	case *models.DataValidationError:
		return "data_validation"
	case *models.MissingMeetingError:
		return "missing_meeting"
	case *models.InvalidTenorError:
		return "invalid_tenor"
	case *models.InvalidStepSizeError:
		return "invalid_step_size"
	case *models.UnknownIssuerError:
		return "unknown_issuer"
	case *models.CurveLookupError:
		return "curve_lookup"
	default:
		return "other"
	}
}
