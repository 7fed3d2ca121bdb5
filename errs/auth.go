package errs

import (
	"net/http"
)

// Unauthorized is the single response for every failed bearer check. The
// reason (missing, expired, tampered, unknown subject) is only logged.
var (
	Unauthorized = &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized}
)

// NewInvalidCredentialsError is shared by unknown-user and wrong-password logins.
func NewInvalidCredentialsError() *ApiErr {
	return NewUnauthorizedError("incorrect username or password")
}
