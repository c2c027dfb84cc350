package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cofrap/cofrap-cli/internal/client/api"
)

// ErrUsernameRequired is raised before any network call when the username is
// empty.
var ErrUsernameRequired = errors.New("username is required")

// EnrollmentState is the progress of the three-step signup sequence.
// Step advances 1→2→3 only after the corresponding gateway call succeeds and
// never regresses except through Reset.
type EnrollmentState struct {
	Step              int
	Username          string
	GeneratedPassword string
	PasswordQR        []byte
	TwoFactorSecret   string
	TwoFactorQR       []byte
	TOTPURI           string
	Err               string
}

// EnrollmentService drives signup: choose a username, receive a generated
// password, then enroll two-factor authentication. It never touches the
// session store; a new account still has to log in afterwards.
type EnrollmentService interface {
	// RequestPassword creates the account and stores the generated
	// password and its QR payload. On success the flow moves to step 2.
	RequestPassword(ctx context.Context, username string) error

	// RequestTwoFactor provisions the TOTP secret for the flow's username.
	// On success the flow moves to step 3. The gateway enforces no step
	// ordering; the flow reuses whatever username step 1 recorded.
	RequestTwoFactor(ctx context.Context) error

	// Reset returns the flow to step 1 with all fields empty.
	Reset()

	// State returns a copy of the current enrollment state.
	State() EnrollmentState
}

type enrollmentService struct {
	client api.Client
	st     EnrollmentState
}

func NewEnrollmentService(client api.Client) EnrollmentService {
	return &enrollmentService{client: client, st: EnrollmentState{Step: 1}}
}

func (e *enrollmentService) RequestPassword(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		e.st.Err = ErrUsernameRequired.Error()
		return ErrUsernameRequired
	}

	grant, err := e.client.GeneratePassword(ctx, username)
	if err != nil {
		e.st.Err = err.Error()
		return err
	}

	e.st = EnrollmentState{
		Step:              2,
		Username:          grant.Username,
		GeneratedPassword: grant.Password,
		PasswordQR:        grant.QRPNG,
	}
	return nil
}

func (e *enrollmentService) RequestTwoFactor(ctx context.Context) error {
	grant, err := e.client.EnrollTwoFactor(ctx, e.st.Username)
	if err != nil {
		e.st.Err = err.Error()
		return err
	}

	e.st.Step = 3
	e.st.TwoFactorSecret = grant.Secret
	e.st.TwoFactorQR = grant.QRPNG
	e.st.TOTPURI = grant.TOTPURI
	e.st.Err = ""
	return nil
}

func (e *enrollmentService) Reset() {
	e.st = EnrollmentState{Step: 1}
}

func (e *enrollmentService) State() EnrollmentState {
	return e.st
}
