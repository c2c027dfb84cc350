package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cofrap/cofrap-cli/internal/client/api"
	"github.com/cofrap/cofrap-cli/internal/client/services"
	"github.com/cofrap/cofrap-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and runs one authentication attempt.
//
// The username prompt is prefilled with the last successfully used name.
// When the flow already knows the account needs a second factor, the TOTP
// code prompt is mandatory; otherwise it may be left empty. The password is
// wiped before returning, succeed or fail, and is never kept between
// attempts.
func (a *App) Login(ctx context.Context) error {
	a.auth.NoteEdit()

	usernamePrompt := "Username"
	last := a.store.LastUsername(ctx)
	if last != "" {
		usernamePrompt = fmt.Sprintf("Username [%s]", last)
	}
	username, err := getSimpleText(a.reader, usernamePrompt, os.Stdout)
	if err != nil {
		return err
	}
	if username == "" {
		username = last
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	codePrompt := "2FA code (leave empty if not enrolled)"
	if a.auth.SecondFactorRequired() {
		codePrompt = "2FA code (6 digits)"
	}
	code, err := getSimpleText(a.reader, codePrompt, os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, username, password, code); err != nil {
		printlnFn(loginMessage(err))
		return err
	}

	printlnFn("Signed in. Type 'help' for dashboard commands.")
	return nil
}

// Logout clears the session and returns the console to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout", "err", err)
		return err
	}
	printlnFn("Signed out.")
	return nil
}

// loginMessage translates a login failure into the user-facing message.
func loginMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrFieldsRequired):
		return "Username and password are required."
	case errors.Is(err, services.ErrCodeRequired):
		return "This account requires a 2FA code."
	case errors.Is(err, api.ErrSecondFactorRequired):
		return "This account requires a 2FA code. Run 'login' again and provide one."
	case errors.Is(err, api.ErrAuthRejected):
		return "Incorrect username, password, or 2FA code."
	case errors.Is(err, api.ErrAccountExpired):
		return "Your account has expired (inactive for more than 6 months)."
	case errors.Is(err, api.ErrAccessDenied):
		return "Access denied."
	case errors.Is(err, api.ErrMissingFields):
		return "Username and password are required."
	case errors.Is(err, api.ErrUnavailable):
		return "Could not reach the server."
	default:
		return "Server error during sign-in."
	}
}
