package cli

import (
	"context"
	"os"
)

// TOTPPreview prints the code an authenticator would currently show. It uses
// the secret from the most recent enrollment when there is one, otherwise it
// asks for a secret, so a user can sanity-check their authenticator setup
// without leaving the console.
func (a *App) TOTPPreview(_ context.Context) error {
	secret := a.enroll.State().TwoFactorSecret

	if secret == "" {
		entered, err := getSimpleText(a.reader, "Enter your 2FA secret (base32)", os.Stdout)
		if err != nil {
			return err
		}
		if entered == "" {
			printlnFn("No secret given.")
			return nil
		}
		secret = entered
	}

	code, err := currentTOTPCode(secret)
	if err != nil {
		printlnFn("Could not compute a code from the secret: " + err.Error())
		return err
	}
	printlnFn("Current code: " + code + " (codes rotate every 30 seconds)")
	return nil
}
