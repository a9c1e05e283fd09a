package service

import (
	"time"

	"YenMetrics/internal/domain/models"
)

// RateProbabilityModel infers hike/cut/no-change probabilities for the next
// policy meeting from OIS quotes spanning it.
type RateProbabilityModel interface {
	Probabilities(quotes []models.OISQuote, meeting models.PolicyMeeting, steps models.PolicySteps) (models.RateProbabilityResult, error)
}

// CreditRiskModel derives ranked issuer credit profiles from bond quotes
// and the government benchmark curve.
type CreditRiskModel interface {
	Profiles(quotes []models.BondQuote, curve []models.GovernmentCurvePoint) ([]models.IssuerCreditProfile, error)
}

// MarketDataAdapter normalizes the raw ingest document into typed inputs.
type MarketDataAdapter interface {
	Normalize(raw *models.RawMarketData, now time.Time) (*models.MarketInputs, error)
}
