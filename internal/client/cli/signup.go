package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cofrap/cofrap-cli/internal/client/api"
	"github.com/cofrap/cofrap-cli/internal/client/services"
)

// Signup drives the three-step enrollment sequence: choose a username,
// receive the generated password, then enroll two-factor authentication.
// The sequence resumes where it left off: a signup interrupted after step 1
// continues at the 2FA step on the next invocation. The session store is
// never touched; a new account still has to log in.
func (a *App) Signup(ctx context.Context) error {
	st := a.enroll.State()

	if st.Step == 3 {
		answer, err := getSimpleText(a.reader,
			fmt.Sprintf("Previous signup for %q is complete. Start a new one? [y/N]", st.Username), os.Stdout)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			a.printEnrollmentSummary(st)
			return nil
		}
		a.enroll.Reset()
		st = a.enroll.State()
	}

	if st.Step == 1 {
		username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
		if err != nil {
			return err
		}

		if err := a.enroll.RequestPassword(ctx, username); err != nil {
			printlnFn(enrollMessage(err))
			return err
		}
		st = a.enroll.State()

		printlnFn(fmt.Sprintf("Account %q created.", st.Username))
		printlnFn("Generated password, write it down before continuing:")
		printlnFn("  " + st.GeneratedPassword)
		if err := a.offerQRSave("password", qrFileName(st.Username, "password"), st.PasswordQR); err != nil {
			return err
		}
	}

	if st.Step == 2 {
		answer, err := getSimpleText(a.reader, "Enable two-factor authentication now? [Y/n]", os.Stdout)
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "n") {
			printlnFn("You can finish 2FA enrollment later by running 'signup' again.")
			return nil
		}

		if err := a.enroll.RequestTwoFactor(ctx); err != nil {
			printlnFn(enrollMessage(err))
			return err
		}
		st = a.enroll.State()

		printlnFn("Scan this QR code with your authenticator app (Google Authenticator, Authy, ...):")
		renderTOTPQR(os.Stdout, st.TOTPURI)
		a.printEnrollmentSummary(st)
		if err := a.offerQRSave("2FA", qrFileName(st.Username, "2fa"), st.TwoFactorQR); err != nil {
			return err
		}
		if err := a.offerTOTPCheck(st.TwoFactorSecret); err != nil {
			return err
		}
		printlnFn("Enrollment complete. Use 'login' to sign in with your new credentials.")
	}

	return nil
}

func (a *App) printEnrollmentSummary(st services.EnrollmentState) {
	printlnFn("2FA secret (backup copy): " + st.TwoFactorSecret)
	printlnFn("TOTP URI: " + st.TOTPURI)
}

// offerQRSave asks whether to write a QR PNG received from the gateway to
// disk. Declining or an absent payload is not an error.
func (a *App) offerQRSave(label, defaultName string, png []byte) error {
	if len(png) == 0 {
		return nil
	}

	answer, err := getSimpleText(a.reader,
		fmt.Sprintf("Save the %s QR code as a PNG file? [y/N]", label), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	path, err := getSimpleText(a.reader, fmt.Sprintf("File name [%s]", defaultName), os.Stdout)
	if err != nil {
		return err
	}
	if path == "" {
		path = defaultName
	}

	if err := saveQRFile(path, png); err != nil {
		printlnFn("Could not save the QR code: " + err.Error())
		return err
	}
	printlnFn("Saved " + path)
	return nil
}

// offerTOTPCheck computes a current code from the freshly enrolled secret so
// the user can compare it against their authenticator before leaving signup.
func (a *App) offerTOTPCheck(secret string) error {
	if secret == "" {
		return nil
	}

	answer, err := getSimpleText(a.reader,
		"Show a current code to check your authenticator? [y/N]", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	code, err := currentTOTPCode(secret)
	if err != nil {
		printlnFn("Could not compute a code from the secret: " + err.Error())
		return err
	}
	printlnFn("Current code: " + code + " (codes rotate every 30 seconds)")
	return nil
}

// SaveQR re-offers saving the QR payloads from the most recent enrollment,
// for users who skipped the prompt during signup.
func (a *App) SaveQR(ctx context.Context) error {
	st := a.enroll.State()
	if len(st.PasswordQR) == 0 && len(st.TwoFactorQR) == 0 {
		printlnFn("No QR codes from a recent signup to save.")
		return nil
	}

	if err := a.offerQRSave("password", qrFileName(st.Username, "password"), st.PasswordQR); err != nil {
		return err
	}
	return a.offerQRSave("2FA", qrFileName(st.Username, "2fa"), st.TwoFactorQR)
}

// enrollMessage translates an enrollment failure into the user-facing message.
func enrollMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		return "A username is required."
	case errors.Is(err, api.ErrUserExists):
		return "This username is already taken."
	case errors.Is(err, api.ErrUserNotFound):
		return "User not found. Generate a password first."
	case errors.Is(err, api.ErrTwoFactorEnabled):
		return "2FA is already enabled for this user."
	case errors.Is(err, api.ErrUnavailable):
		return "Could not reach the server."
	default:
		return "Server error during enrollment."
	}
}
