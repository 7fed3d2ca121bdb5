package auth

import "github.com/samber/oops"

// Error codes attached to auth failures. Handlers collapse all of them to a
// single 401 and only the logs carry the code.
const (
	CodeEmptyPassword      = "AUTH_EMPTY_PASSWORD"
	CodePasswordTooLong    = "AUTH_PASSWORD_TOO_LONG"
	CodeHashFailed         = "AUTH_HASH_FAILED"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeLoginFailed        = "AUTH_LOGIN_FAILED"
	CodeUnauthenticated    = "AUTH_UNAUTHENTICATED"
	CodeLookupFailed       = "AUTH_LOOKUP_FAILED"
	CodeTokenMalformed     = "TOKEN_MALFORMED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenBadSignature  = "TOKEN_BAD_SIGNATURE"
	CodeTokenSignFailed    = "TOKEN_SIGN_FAILED"
)

// ErrorCode returns the oops code carried by err, or "" when there is none.
func ErrorCode(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	if code, ok := oopsErr.Code().(string); ok {
		return code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && ErrorCode(err) == code
}
