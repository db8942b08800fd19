package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := NewBadRequestError("quantity must be positive")

	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindNotFound))

	// Kinds survive wrapping
	wrapped := fmt.Errorf("placing sale: %w", err)
	assert.True(t, IsKind(wrapped, KindValidation))

	assert.False(t, IsKind(errors.New("plain"), KindValidation))
	assert.False(t, IsKind(nil, KindValidation))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(NewNotFoundError("Order"))
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Order not found", appErr.Message)

	wrapped := fmt.Errorf("paying order: %w", ErrForbidden)
	assert.Equal(t, KindForbidden, GetAppError(wrapped).Kind)

	// Unknown errors collapse to an internal 500
	plain := GetAppError(errors.New("driver: bad connection"))
	assert.Equal(t, KindInternal, plain.Kind)
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "driver: bad connection", plain.Message)
}

func TestConstructorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		kind Kind
		code int
	}{
		{"bad request", NewBadRequestError("x"), KindValidation, http.StatusBadRequest},
		{"validation", NewValidationError([]FieldError{{Field: "name", Message: "required"}}), KindValidation, http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("Item"), KindNotFound, http.StatusNotFound},
		{"insufficient stock", NewInsufficientStock("x"), KindInsufficientStock, http.StatusConflict},
		{"insufficient points", NewInsufficientPoints("x"), KindInsufficientPoints, http.StatusConflict},
		{"insufficient credit", NewInsufficientCredit("x"), KindInsufficientCredit, http.StatusConflict},
		{"inconsistent state", NewInconsistentState("x"), KindInconsistentState, http.StatusInternalServerError},
		{"explicit", New(KindConflict, http.StatusConflict, "dup"), KindConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}
