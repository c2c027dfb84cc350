// Package api contains the client for the COFRAP identity gateway: account
// creation (generated password), two-factor enrollment, and authentication.
// All business logic lives behind the gateway; this package only speaks its
// HTTP/JSON contract and translates failures into the error taxonomy in
// errors.go.
package api

import (
	"context"
	"time"
)

// PasswordGrant is the result of provisioning a new account: the generated
// password and a PNG QR code carrying the same password.
type PasswordGrant struct {
	Username string
	Password string
	QRPNG    []byte
}

// TwoFactorGrant is the result of enrolling 2FA: the TOTP secret, the
// otpauth:// URI, and a PNG QR code encoding that URI for authenticator apps.
type TwoFactorGrant struct {
	Username string
	Secret   string
	TOTPURI  string
	QRPNG    []byte
}

// Account is the profile returned by a successful authentication.
// LastActivity is nil when the gateway did not report a usable timestamp.
type Account struct {
	UserID       int64
	Username     string
	HasTwoFactor bool
	LastActivity *time.Time
}

// Client defines the gateway operations used by the console flows.
//
// All methods honor context cancellation. Failures are reported through the
// sentinel errors in errors.go; methods never retry.
type Client interface {
	// GeneratePassword creates the account and returns its generated password.
	GeneratePassword(ctx context.Context, username string) (*PasswordGrant, error)

	// EnrollTwoFactor provisions a TOTP secret for an existing account.
	EnrollTwoFactor(ctx context.Context, username string) (*TwoFactorGrant, error)

	// Authenticate verifies username/password and, when the account has 2FA
	// enabled, the TOTP code. Pass an empty totpCode when none was supplied.
	Authenticate(ctx context.Context, username string, password []byte, totpCode string) (*Account, error)

	// Ping checks gateway reachability.
	Ping(ctx context.Context) error

	// Close releases underlying transport resources.
	Close() error
}
