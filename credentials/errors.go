package credentials

import (
	"fmt"
	"net/http"
)

// ConfigError reports a credentials document that is not well-formed JSON.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid credentials (%v)", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MissingFieldError names a required field absent from the credentials
// document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("credentials missing required field '%s'", e.Field)
}

// KeyFormatError reports a private key that could not be decoded into a
// usable RSA signing key.
type KeyFormatError struct {
	Reason string
	Err    error
}

func (e *KeyFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid private key: %s (%v)", e.Reason, e.Err)
	}

	return fmt.Sprintf("invalid private key: %s", e.Reason)
}

func (e *KeyFormatError) Unwrap() error {
	return e.Err
}

// SigningError reports key material that could not sign the bearer
// assertion. Retrying the exchange cannot succeed.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing token assertion (%v)", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// NetworkError is a transport failure reaching the token endpoint. The
// credential itself has not been judged, so the exchange may be retried.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("token exchange (%v)", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError is a rejection from the authorization server. It carries the
// HTTP status and the server's error payload so that callers can distinguish
// a revoked credential from a transient server fault.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token exchange rejected: %v %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Permanent returns true when retrying the identical exchange cannot succeed
// (the server rejected the assertion itself rather than failing to process
// it).
func (e *AuthError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
