package docs

import "time"

// APIResponse is the standard envelope for all API responses
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id" example:"req_123456789"`
	Timestamp time.Time   `json:"timestamp" example:"2026-01-15T10:30:00Z"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success   bool        `json:"success" example:"false"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id" example:"req_123456789"`
}

// ErrorDetail carries the machine-readable error taxonomy
type ErrorDetail struct {
	Type    string `json:"type" example:"VALIDATION_ERROR"`
	Message string `json:"message" example:"invalid request body"`
	Code    string `json:"code,omitempty" example:"INVALID_IMPACT_UNIT"`
}

// HealthCheckResponse represents the health check response
type HealthCheckResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp time.Time              `json:"timestamp" example:"2026-01-15T10:30:00Z"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// EmptyResponse represents an empty successful response
type EmptyResponse struct{}
