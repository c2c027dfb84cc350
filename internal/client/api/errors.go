package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the gateway contract. Match with errors.Is; the full
// response detail is available via errors.As on *APIError.
var (
	// ErrUnavailable means the request never reached the gateway.
	ErrUnavailable = errors.New("gateway unreachable")

	// ErrServer covers any unexpected non-2xx status or a malformed
	// success body.
	ErrServer = errors.New("server error")

	// ErrUserExists is reported by password generation when the username
	// is already taken (409).
	ErrUserExists = errors.New("username already exists")

	// ErrUserNotFound is reported by two-factor enrollment when the user
	// does not exist yet (404).
	ErrUserNotFound = errors.New("user not found")

	// ErrTwoFactorEnabled is reported by two-factor enrollment when a
	// secret was already provisioned (409).
	ErrTwoFactorEnabled = errors.New("two-factor authentication already enabled")

	// ErrSecondFactorRequired is not a terminal failure: the account has
	// 2FA enabled and the login must be resubmitted with a code (400 with
	// the requires_2fa flag).
	ErrSecondFactorRequired = errors.New("second factor required")

	// ErrMissingFields means the gateway rejected the request because a
	// required field was empty (400 without the requires_2fa flag).
	ErrMissingFields = errors.New("username and password are required")

	// ErrAuthRejected means the credentials or the 2FA code were wrong (401).
	ErrAuthRejected = errors.New("invalid credentials")

	// ErrAccessDenied is a 403 without the expiry flag.
	ErrAccessDenied = errors.New("access denied")

	// ErrAccountExpired is a 403 with the expiry flag: the account was
	// inactive for longer than the expiry window.
	ErrAccountExpired = errors.New("account expired")
)

// APIError carries the decoded gateway error response. It unwraps to one of
// the sentinel errors above so callers can branch with errors.Is while still
// having access to the status code and the server-provided message.
type APIError struct {
	StatusCode  int
	Message     string
	Requires2FA bool
	Expired     bool

	kind error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("gateway: %v (status %d)", e.kind, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
