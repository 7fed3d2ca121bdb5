package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Notification & Configuration Errors
var (
	ErrNotificationFailed  = errors.New("notification failed")
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// NewNotificationError wraps a failed email send. These never reach HTTP
// callers; they are logged by the dispatcher.
func NewNotificationError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrNotificationFailed,
		Details:    fmt.Sprintf("Sending email via %s failed", provider),
		Cause:      cause,
		Field:      "notification",
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func IsNotificationError(err error) bool {
	return errors.Is(err, ErrNotificationFailed)
}
