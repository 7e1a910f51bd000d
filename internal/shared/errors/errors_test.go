package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighter/common/internal/pagination"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns message", func(t *testing.T) {
		err := &AppError{Code: "TEST_ERROR", Message: "test error message"}
		assert.Equal(t, "test error message", err.Error())
	})

	t.Run("Error includes wrapped error", func(t *testing.T) {
		wrapped := errors.New("wrapped error")
		err := &AppError{Code: "TEST_ERROR", Message: "test error message", Err: wrapped}
		assert.Contains(t, err.Error(), "test error message")
		assert.Contains(t, err.Error(), "wrapped error")
	})

	t.Run("Unwrap returns wrapped error", func(t *testing.T) {
		wrapped := errors.New("wrapped error")
		err := &AppError{Code: "TEST_ERROR", Message: "test message", Err: wrapped}
		assert.Equal(t, wrapped, err.Unwrap())
	})

	t.Run("WithDetails copies", func(t *testing.T) {
		base := BadRequest("bad")
		withDetails := base.WithDetails("x")
		assert.Nil(t, base.Details)
		assert.Equal(t, "x", withDetails.Details)
	})
}

func TestNewAppError(t *testing.T) {
	wrapped := errors.New("original")
	err := NewAppError("CUSTOM_ERROR", "custom message", 418, wrapped)

	assert.Equal(t, "CUSTOM_ERROR", err.Code)
	assert.Equal(t, "custom message", err.Message)
	assert.Equal(t, 418, err.StatusCode)
	assert.Equal(t, wrapped, err.Err)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
		is     error
	}{
		{"not found", NotFound("user"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"bad request", BadRequest("nope"), "BAD_REQUEST", http.StatusBadRequest, ErrBadRequest},
		{"validation", ValidationError("nope"), "VALIDATION_ERROR", http.StatusUnprocessableEntity, ErrBadRequest},
		{"conflict", Conflict("taken"), "CONFLICT", http.StatusConflict, ErrConflict},
		{"internal", Internal("boom", nil), "INTERNAL_ERROR", http.StatusInternalServerError, ErrInternal},
		{"unavailable", Unavailable("down", nil), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.ErrorIs(t, tt.err, tt.is)
		})
	}
	assert.Equal(t, "user not found", NotFound("user").Message)
}

func TestFromPagination(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		src := &pagination.ValidationError{Param: "sort", Token: "invalid_field"}
		err := FromPagination(fmt.Errorf("bind: %w", src))
		require.NotNil(t, err)

		assert.Equal(t, "BAD_REQUEST", err.Code)
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		assert.Contains(t, err.Message, "invalid_field")
		assert.Equal(t, map[string]string{"param": "sort", "value": "invalid_field"}, err.Details)
		assert.True(t, pagination.IsValidation(err))
	})

	t.Run("other error", func(t *testing.T) {
		assert.Nil(t, FromPagination(errors.New("other")))
		assert.Nil(t, FromPagination(nil))
	})
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	nf := NotFound("user")
	assert.Same(t, nf, From(fmt.Errorf("wrap: %w", nf)))

	verr := From(&pagination.ValidationError{Param: "order", Token: "sideways"})
	assert.Equal(t, http.StatusBadRequest, verr.StatusCode)

	internal := From(errors.New("disk on fire"))
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.StatusCode)

	missing := From(fmt.Errorf("lookup: %w", ErrNotFound))
	assert.Equal(t, "NOT_FOUND", missing.Code)
}

func TestToResponse(t *testing.T) {
	resp := BadRequest("invalid").WithDetails("d").ToResponse()
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Equal(t, "invalid", resp.Error.Message)
	assert.Equal(t, "d", resp.Error.Details)
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"AppError", NotFound("x"), http.StatusNotFound},
		{"pagination validation", &pagination.ValidationError{Param: "sort", Token: "x"}, http.StatusBadRequest},
		{"ErrNotFound", ErrNotFound, http.StatusNotFound},
		{"ErrBadRequest", ErrBadRequest, http.StatusBadRequest},
		{"ErrConflict", ErrConflict, http.StatusConflict},
		{"ErrUnavailable", ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetStatusCode(tt.err))
		})
	}
}
