package errors

import (
	"fmt"
	"net/http"
	"testing"

	"agriconnect/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesByCode(t *testing.T) {
	err := NewValidationError("price must be a non-negative number")

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, fmt.Errorf("failed to create product: %w", err), ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "price must be a non-negative number", err.Message())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode())
}

func TestBaseError_WithDetails(t *testing.T) {
	err := ErrFarmerNotFound.WithDetails("id=42")

	assert.Equal(t, "farmer not found: id=42", err.Error())
	assert.Equal(t, "FARMER_NOT_FOUND", err.ErrorCode())
	assert.Empty(t, ErrFarmerNotFound.Details())
}

func TestInvalidTransitionError(t *testing.T) {
	var err error = NewInvalidTransitionError("delivered", "pending")

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "INVALID_STATUS_TRANSITION", appErr.ErrorCode())
	assert.Contains(t, appErr.Message(), `"delivered"`)
	assert.Contains(t, appErr.Message(), `"pending"`)
}

func TestDatabaseExecuteError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create order")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
}

func TestNewAppErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		err         AppError
		wantCode    string
		wantDetails any
	}{
		{"client error keeps details", ErrFarmerNotFound.WithDetails("id=42"), "FARMER_NOT_FOUND", "id=42"},
		{"no details", NewValidationError("quantity must be at least 1"), "VALIDATION_FAILED", nil},
		{"server error hides details", NewDatabaseExecuteError(errors.New("connection reset"), "failed to create order"), "DATABASE_EXECUTE_FAILED", nil},
		{"forbidden hides details", ErrForbidden.WithDetails("order belongs to another farmer"), "FORBIDDEN", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewAppErrorResponse(tt.err, "req-1")

			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.err.Message(), resp.Error.Message)
			assert.Equal(t, tt.wantDetails, resp.Error.Details)
			assert.Equal(t, "req-1", resp.Meta.RequestID)
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse([]string{"eggs"}, "req-2")

	assert.Equal(t, []string{"eggs"}, resp.Data)
	assert.Equal(t, "req-2", resp.Meta.RequestID)
}
