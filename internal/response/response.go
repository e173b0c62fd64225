// file: internal/response/response.go
package response

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/contextutils"
	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Meta      *Meta        `json:"meta,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Meta contains metadata about the response
type Meta struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
	Count  int `json:"count"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder constructs standardized responses. Internal error messages are
// masked; their causes only reach the logs.
type Builder struct {
	logger             *zap.Logger
	maskInternalErrors bool
}

// NewBuilder creates a new response builder
func NewBuilder(logger *zap.Logger, maskInternalErrors bool) *Builder {
	return &Builder{
		logger:             logger,
		maskInternalErrors: maskInternalErrors,
	}
}

// WriteSuccess writes a successful JSON response
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: contextutils.GetRequestID(r.Context()),
		Timestamp: time.Now().Unix(),
	}, http.StatusOK)
}

// WriteSuccessWithMeta writes a successful JSON response with list metadata
func (b *Builder) WriteSuccessWithMeta(w http.ResponseWriter, r *http.Request, data interface{}, meta *Meta) {
	b.writeJSON(w, r, &APIResponse{
		Success:   true,
		Data:      data,
		Meta:      meta,
		RequestID: contextutils.GetRequestID(r.Context()),
		Timestamp: time.Now().Unix(),
	}, http.StatusOK)
}

// WriteCreated writes a successful creation response
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: contextutils.GetRequestID(r.Context()),
		Timestamp: time.Now().Unix(),
	}, http.StatusCreated)
}

// WriteNoContent writes an empty success response
func (b *Builder) WriteNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error response with the status the error carries
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	detail := b.convertError(err)
	b.logError(r.Context(), err, detail)
	b.writeJSON(w, r, &APIResponse{
		Success:   false,
		Error:     detail,
		RequestID: contextutils.GetRequestID(r.Context()),
		Timestamp: time.Now().Unix(),
	}, StatusCode(err))
}

func (b *Builder) writeJSON(w http.ResponseWriter, r *http.Request, resp *APIResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("Failed to encode JSON response",
			zap.Error(err),
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
		)
	}
}

// ===============================
// ERROR MAPPING
// ===============================

// StatusCode maps an error to its HTTP status
func StatusCode(err error) int {
	if se, ok := services.AsServiceError(err); ok {
		return se.GetStatusCode()
	}
	return http.StatusInternalServerError
}

// convertError maps an error to the wire representation
func (b *Builder) convertError(err error) *ErrorDetail {
	if se, ok := services.AsServiceError(err); ok {
		detail := &ErrorDetail{
			Type:    se.Type,
			Message: se.Message,
			Code:    se.Code,
			Details: se.Details,
		}
		if b.maskInternalErrors && se.Type == "INTERNAL_ERROR" {
			detail.Message = "An internal error occurred"
			detail.Details = nil
		}
		return detail
	}

	message := err.Error()
	if b.maskInternalErrors {
		message = "An unexpected error occurred"
	}
	return &ErrorDetail{
		Type:    "INTERNAL_ERROR",
		Message: message,
	}
}

func (b *Builder) logError(ctx context.Context, err error, detail *ErrorDetail) {
	requestID := contextutils.GetRequestID(ctx)

	switch detail.Type {
	case "VALIDATION_ERROR", "BUSINESS_ERROR", "NOT_FOUND", "CONFLICT", "FORBIDDEN":
		b.logger.Warn("Request error",
			zap.String("request_id", requestID),
			zap.String("error_type", detail.Type),
			zap.String("error_message", detail.Message),
			zap.String("error_code", detail.Code),
		)
	default:
		b.logger.Error("Internal error",
			zap.String("request_id", requestID),
			zap.String("error_type", detail.Type),
			zap.Error(err),
		)
	}
}
