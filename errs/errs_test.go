package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiErr_Unwrap(t *testing.T) {
	err := NewMissingRequiredFieldError("title")

	assert.True(t, errors.Is(err, ErrMissingRequiredField))
	assert.True(t, IsMissingRequiredFieldError(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "title", err.Field)
	assert.Equal(t, "missing required field: Missing required field: title", err.Error())
	assert.Equal(t, "missing required field", err.Message())
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("project")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "project not found", err.Message())
	assert.True(t, IsNotFound(err))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(Unauthorized))
	assert.True(t, IsUnauthorized(NewInvalidCredentialsError()))
	assert.False(t, IsUnauthorized(NewNotFound("skill")))
	assert.Equal(t, "incorrect username or password", NewInvalidCredentialsError().Message())
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"duplicate", errors.New("ERROR: duplicate key value violates unique constraint"), http.StatusConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: admin_users.username"), http.StatusConflict},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "project", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.cause, err.Cause)
			assert.Contains(t, err.GetFullError(), tt.cause.Error())
		})
	}
}
