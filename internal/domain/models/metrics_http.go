package models

// Requests for metrics HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Version string `query:"version" json:"version" validate:"required"`
}

type CreditRequest struct {
	Limit int `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}
