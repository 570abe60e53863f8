package session

import (
	"github.com/goliatone/go-errors"
)

const (
	textCodeConnectivity        = "session_connection_error"
	textCodeInvalidCredentials  = "session_invalid_credentials"
	textCodeSessionExpired      = "session_expired"
	textCodeResponseParse       = "session_response_parse"
	textCodeServerError         = "session_server_error"
	textCodeRefreshTokenMissing = "session_refresh_token_missing"
	textCodeInvalidTransition   = "session_invalid_transition"
)

// ErrConnectivity is returned when no response was received from the server.
var ErrConnectivity = errors.New("connection error", errors.CategoryOperation).
	WithTextCode(textCodeConnectivity)

// ErrInvalidCredentials is the generic fallback when login is rejected and
// the server supplied no message of its own.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrSessionExpired is returned when a silent refresh failed after a 401 on
// an authenticated call.
var ErrSessionExpired = errors.New("session expired", errors.CategoryAuth).
	WithTextCode(textCodeSessionExpired).
	WithCode(errors.CodeUnauthorized)

// ErrRefreshTokenMissing is returned when a refresh is attempted with no
// persisted refresh token.
var ErrRefreshTokenMissing = errors.New("no refresh token available", errors.CategoryAuth).
	WithTextCode(textCodeRefreshTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidTransition is returned when an operation is requested from a
// session phase that does not allow it.
var ErrInvalidTransition = errors.New("invalid session phase transition", errors.CategoryValidation).
	WithTextCode(textCodeInvalidTransition).
	WithCode(errors.CodeBadRequest)

// invalidCredentialsError keeps the server-supplied rejection message when
// one is available, falling back to the generic error otherwise.
func invalidCredentialsError(message string) *errors.Error {
	if message == "" {
		return ErrInvalidCredentials
	}
	return errors.New(message, errors.CategoryAuth).
		WithTextCode(textCodeInvalidCredentials).
		WithCode(errors.CodeUnauthorized)
}

func serverError(message string) *errors.Error {
	if message == "" {
		message = "unknown server error"
	}
	return errors.New(message, errors.CategoryInternal).
		WithTextCode(textCodeServerError)
}

func parseError(snippet string) *errors.Error {
	return errors.New("failed to process response: "+snippet, errors.CategoryBadInput).
		WithTextCode(textCodeResponseParse)
}

func connectivityError(err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryOperation, "connection error").
		WithTextCode(textCodeConnectivity)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == code
	}
	return false
}

// IsConnectivityError reports whether err means no response was received.
func IsConnectivityError(err error) bool {
	return hasTextCode(err, textCodeConnectivity)
}

// IsInvalidCredentialsError reports whether err is a login rejection.
func IsInvalidCredentialsError(err error) bool {
	return hasTextCode(err, textCodeInvalidCredentials)
}

// IsSessionExpiredError reports whether err means the session could not be
// silently renewed.
func IsSessionExpiredError(err error) bool {
	return hasTextCode(err, textCodeSessionExpired)
}

// IsParseError reports whether err means the response envelope was
// malformed.
func IsParseError(err error) bool {
	return hasTextCode(err, textCodeResponseParse)
}

// IsServerError reports whether err carries a non-success envelope or an
// unexpected server-side failure.
func IsServerError(err error) bool {
	return hasTextCode(err, textCodeServerError)
}
