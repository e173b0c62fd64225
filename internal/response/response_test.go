// file: internal/response/response_test.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) *APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return &resp
}

func TestWriteSuccess(t *testing.T) {
	builder := NewBuilder(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	builder.WriteSuccess(rec, req, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.NotZero(t, resp.Timestamp)
}

func TestWriteSuccessWithMeta(t *testing.T) {
	builder := NewBuilder(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	builder.WriteSuccessWithMeta(rec, req, []string{"a", "b"}, &Meta{Limit: 20, Count: 2})

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.Equal(t, 20, resp.Meta.Limit)
}

func TestWriteCreated(t *testing.T) {
	builder := NewBuilder(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	builder.WriteCreated(rec, req, map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
}

func TestWriteNoContent(t *testing.T) {
	builder := NewBuilder(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/test", nil)

	builder.WriteNoContent(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "validation error maps to 400",
			err:        services.NewValidationError("bad input", nil),
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION_ERROR",
		},
		{
			name:       "not found maps to 404",
			err:        services.NewNotFoundError("missing"),
			wantStatus: http.StatusNotFound,
			wantType:   "NOT_FOUND",
		},
		{
			name:       "forbidden maps to 403",
			err:        services.NewForbiddenError("nope"),
			wantStatus: http.StatusForbidden,
			wantType:   "FORBIDDEN",
		},
		{
			name:       "conflict maps to 409",
			err:        services.NewConflictError("taken", "ALREADY_JOINED"),
			wantStatus: http.StatusConflict,
			wantType:   "CONFLICT",
		},
		{
			name:       "business error maps to 422",
			err:        services.NewBusinessError("closed", "CHALLENGE_CLOSED"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   "BUSINESS_ERROR",
		},
		{
			name:       "plain error maps to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "INTERNAL_ERROR",
		},
	}

	builder := NewBuilder(zap.NewNop(), false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			builder.WriteError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestErrorMasking(t *testing.T) {
	t.Run("internal causes are masked in production", func(t *testing.T) {
		builder := NewBuilder(zap.NewNop(), true)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		builder.WriteError(rec, req, services.WrapInternalError("db exploded", errors.New("pq: connection refused")))

		resp := decodeResponse(t, rec)
		assert.Equal(t, "An internal error occurred", resp.Error.Message)
		assert.NotContains(t, rec.Body.String(), "pq: connection refused")
	})

	t.Run("internal messages pass through in development", func(t *testing.T) {
		builder := NewBuilder(zap.NewNop(), false)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		builder.WriteError(rec, req, services.WrapInternalError("db exploded", nil))

		resp := decodeResponse(t, rec)
		assert.Equal(t, "db exploded", resp.Error.Message)
	})

	t.Run("business errors are never masked", func(t *testing.T) {
		builder := NewBuilder(zap.NewNop(), true)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		builder.WriteError(rec, req, services.NewBusinessError("challenge is not open for joining", "CHALLENGE_CLOSED"))

		resp := decodeResponse(t, rec)
		assert.Equal(t, "challenge is not open for joining", resp.Error.Message)
		assert.Equal(t, "CHALLENGE_CLOSED", resp.Error.Code)
	})
}
