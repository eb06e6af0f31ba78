package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorString(t *testing.T) {
	err := NewValidation("bad quantity")
	assert.Equal(t, "VALIDATION_ERROR: bad quantity", err.Error())

	cause := errors.New("connection reset")
	dbErr := NewDatabase("insert product", cause)
	assert.Contains(t, dbErr.Error(), "caused by: connection reset")
	assert.ErrorIs(t, dbErr, cause)
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("update product: %w", NewNotFound("product", 42))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Equal(t, 42, appErr.Details["id"])
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("x"), http.StatusBadRequest},
		{"not found", NewNotFound("product", "CL-SHI-001"), http.StatusNotFound},
		{"duplicate", NewDuplicate("product", "product_code", "CL-SHI-001"), http.StatusConflict},
		{"database", NewDatabase("select", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestWithDetail_InitializesMap(t *testing.T) {
	err := NewConflict("taken").WithDetail("field", "product_code")
	assert.Equal(t, "product_code", err.Details["field"])
	assert.True(t, IsAppError(err))
	assert.False(t, IsDuplicate(err))
}
