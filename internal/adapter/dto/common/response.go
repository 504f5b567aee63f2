package common

// SuccessResponse is the envelope of every successful JSON response
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope of every error response. Info is only set
// for client errors.
type ErrorResponse struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message"`
	Info    string      `json:"info,omitempty"`
}

// HealthResponse reports liveness and which AI services are configured
type HealthResponse struct {
	Status      string            `json:"status"`
	Environment string            `json:"environment"`
	Services    map[string]string `json:"services"`
}
