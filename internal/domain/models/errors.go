package models

import "fmt"

// Typed failures raised by the adapter and the pricing models. All are
// detected synchronously and abort the evaluation cycle; none are retried
// here. Callers match them with errors.As.

// DataValidationError reports a malformed or missing raw input field.
type DataValidationError struct {
	Field  string
	Reason string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("invalid market data: %s: %s", e.Field, e.Reason)
}

// MissingMeetingError means no upcoming policy meeting is configured.
type MissingMeetingError struct {
	SourceDate string
}

func (e *MissingMeetingError) Error() string {
	return fmt.Sprintf("no upcoming policy meeting after %s", e.SourceDate)
}

// InvalidTenorError means the post-meeting tenor does not extend past the
// meeting horizon, leaving zero post-meeting days.
type InvalidTenorError struct {
	TenorDays int
	DaysUntil int
}

func (e *InvalidTenorError) Error() string {
	return fmt.Sprintf("tenor %dd does not extend past meeting horizon %dd", e.TenorDays, e.DaysUntil)
}

// InvalidStepSizeError means a zero policy step size was supplied.
type InvalidStepSizeError struct {
	Step float64
}

func (e *InvalidStepSizeError) Error() string {
	return fmt.Sprintf("invalid policy step size %v", e.Step)
}

// UnknownIssuerError means an issuer was requested with zero bond quotes.
type UnknownIssuerError struct {
	IssuerID string
}

func (e *UnknownIssuerError) Error() string {
	return fmt.Sprintf("issuer %q has no bond quotes", e.IssuerID)
}

// CurveLookupError means a maturity fell outside the government curve's
// interpolation bounds; the model never extrapolates.
type CurveLookupError struct {
	MaturityYears float64
	Min, Max      float64
}

func (e *CurveLookupError) Error() string {
	return fmt.Sprintf("maturity %.3fy outside curve bounds [%.3fy, %.3fy]", e.MaturityYears, e.Min, e.Max)
}
