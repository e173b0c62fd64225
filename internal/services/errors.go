// file: internal/services/errors.go
package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// ===============================
// ERROR TYPES
// ===============================

// ServiceError represents a structured service error
type ServiceError struct {
	Type       string                 `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Cause      error                  `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetStatusCode returns the HTTP status code for this error
func (e *ServiceError) GetStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// AsServiceError unwraps err into a *ServiceError when possible
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ===============================
// ERROR CONSTRUCTORS
// ===============================

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewBusinessError creates a business logic error
func NewBusinessError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       "BUSINESS_ERROR",
		Message:    message,
		Code:       code,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Type:       "NOT_FOUND",
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{
		Type:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *ServiceError {
	return &ServiceError{
		Type:       "FORBIDDEN",
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       "CONFLICT",
		Message:    message,
		Code:       code,
		StatusCode: http.StatusConflict,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *ServiceError {
	return &ServiceError{
		Type:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// WrapInternalError wraps a low-level failure as an internal error,
// keeping the cause for logging while the message stays safe for clients.
func WrapInternalError(message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation, the signal a concurrent writer already inserted the row.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// ===============================
// BUSINESS ERROR CODES
// ===============================

const (
	CodeActionNotEditable   = "ACTION_NOT_EDITABLE"
	CodeActionAlreadySet    = "ACTION_ALREADY_DECIDED"
	CodeChallengeClosed     = "CHALLENGE_CLOSED"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeNotJoined           = "NOT_JOINED"
	CodeBadgeAlreadyEarned  = "BADGE_ALREADY_EARNED"
	CodeInvalidTimeframe    = "INVALID_TIMEFRAME"
	CodeInvalidImpactUnit   = "INVALID_IMPACT_UNIT"
	CodeInvalidCriteria     = "INVALID_CRITERIA"
	CodeCategoryInactive    = "CATEGORY_INACTIVE"
	CodeUserInactive        = "USER_INACTIVE"
	CodeChallengeDateOrder  = "CHALLENGE_DATE_ORDER"
	CodeEmptyVerifyBatch    = "EMPTY_VERIFY_BATCH"
)
