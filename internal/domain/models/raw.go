package models

// Raw document shape produced by the ingest collaborator (market_data.json).
// Rates and yields here are in percent; the adapter converts to decimal form.

type RawMarketData struct {
	UpdatedAt   string          `json:"updated_at"`
	SourceDate  string          `json:"source_date" validate:"required"`
	SourceURL   string          `json:"source_url"`
	Rates       []RawRate       `json:"rates" validate:"required,min=2,dive"`
	BojMeetings []string        `json:"boj_meetings"`
	JGBCurve    []RawCurvePoint `json:"jgb_curve" validate:"required,min=2,dive"`
	Bonds       []RawBond       `json:"bonds" validate:"dive"`
}

type RawRate struct {
	Tenor string  `json:"tenor" validate:"required"`
	Rate  float64 `json:"rate"`
}

type RawCurvePoint struct {
	Tenor string  `json:"tenor" validate:"required"`
	Rate  float64 `json:"rate"`
}

type RawBond struct {
	Issuer        string  `json:"issuer" validate:"required"`
	MaturityYears float64 `json:"maturity_years" validate:"gt=0"`
	Yield         float64 `json:"yield"`
}
