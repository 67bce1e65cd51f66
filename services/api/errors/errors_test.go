package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetCodes(t *testing.T) {
	cases := []struct {
		err  *APIError
		typ  ErrorType
		code int
	}{
		{NewValidationError("bad", nil), ErrorTypeValidation, http.StatusBadRequest},
		{NewDatabaseError("db", nil), ErrorTypeDatabase, http.StatusInternalServerError},
		{NewAuthError("auth", nil), ErrorTypeAuth, http.StatusUnauthorized},
		{NewNotFoundError("none", nil), ErrorTypeNotFound, http.StatusNotFound},
		{NewRateLimitError("slow down", nil), ErrorTypeRateLimit, http.StatusTooManyRequests},
		{NewUnavailableError("down", nil), ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{NewInternalError("oops", nil), ErrorTypeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.typ, tc.err.Type)
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.code, StatusCode(tc.err))
	}
}

func TestErrorMessageIncludesInternal(t *testing.T) {
	inner := stderrors.New("connection refused")
	err := NewDatabaseError("failed to insert sample", inner)

	assert.Equal(t, "database: failed to insert sample (internal: connection refused)", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "validation: bad", NewValidationError("bad", nil).Error())
}

func TestHelpersFollowWrapping(t *testing.T) {
	wrapped := fmt.Errorf("latest: %w", NewNotFoundError("no water level data", nil))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsUnavailable(wrapped))
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))

	assert.Equal(t, http.StatusInternalServerError, StatusCode(stderrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestWithRequestID(t *testing.T) {
	err := NewValidationError("cm is required", nil).WithRequestID("req-1")
	assert.Equal(t, "req-1", err.RequestID)
}
