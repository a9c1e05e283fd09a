package http

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes one failed request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"version"`
	Message string                 `json:"message,omitempty" example:"version is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// ListDataResponse wraps a truncated list with the untruncated total.
type ListDataResponse struct {
	Rows  interface{} `json:"rows"`
	Total int64       `json:"total"`
}
