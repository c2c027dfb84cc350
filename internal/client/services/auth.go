package services

import (
	"context"
	"errors"

	"github.com/cofrap/cofrap-cli/internal/client/api"
	"github.com/cofrap/cofrap-cli/internal/client/session"
)

// Validation errors raised before any network call.
var (
	ErrFieldsRequired = errors.New("username and password must not be empty")
	ErrCodeRequired   = errors.New("a 2FA code is required for this account")
)

// LoginState tracks where the login flow currently is.
type LoginState int

const (
	StateIdle LoginState = iota
	StateSubmitting
	StateAwaitingSecondFactor
	StateAuthenticated
	StateFailed
)

func (s LoginState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingSecondFactor:
		return "awaiting second factor"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AuthService drives the login sequence and owns its state machine.
//
// Transitions: Idle→Submitting on submit; Submitting→AwaitingSecondFactor
// when the gateway asks for a code; Submitting→Authenticated on success;
// Submitting→Failed on any other rejection; Failed→Idle on the next edit
// (NoteEdit). The session store is mutated only on success.
type AuthService interface {
	// Login runs one authentication attempt. The caller owns the password
	// slice and should wipe it after the call; the flow never retains it.
	Login(ctx context.Context, username string, password []byte, totpCode string) error

	// Logout clears the session. Idempotent, no failure path beyond
	// persistence errors.
	Logout(ctx context.Context) error

	// State reports the current flow state.
	State() LoginState

	// SecondFactorRequired is true once the gateway signaled that this
	// account needs a TOTP code. It survives a failed code attempt so the
	// next submission still asks for one.
	SecondFactorRequired() bool

	// NoteEdit informs the flow that the user started editing a field;
	// a Failed flow returns to Idle.
	NoteEdit()

	// Close releases the underlying client.
	Close(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  *session.Store

	state            LoginState
	needSecondFactor bool
}

// NewAuthService constructs an AuthService bound to the gateway client and
// the session store.
func NewAuthService(client api.Client, store *session.Store) AuthService {
	return &authService{client: client, store: store, state: StateIdle}
}

func (a *authService) Login(ctx context.Context, username string, password []byte, totpCode string) error {
	// client-side validation happens before any network call
	if username == "" || len(password) == 0 {
		return ErrFieldsRequired
	}
	if a.needSecondFactor && totpCode == "" {
		return ErrCodeRequired
	}

	a.state = StateSubmitting

	acct, err := a.client.Authenticate(ctx, username, password, totpCode)
	if err != nil {
		if errors.Is(err, api.ErrSecondFactorRequired) {
			a.state = StateAwaitingSecondFactor
			a.needSecondFactor = true
			return err
		}
		a.state = StateFailed
		return err
	}

	profile := session.Profile{
		UserID:         acct.UserID,
		Username:       acct.Username,
		FirstName:      acct.Username,
		HasTwoFactor:   acct.HasTwoFactor,
		LastActivityAt: acct.LastActivity,
	}
	if err := a.store.SetProfile(ctx, profile); err != nil {
		a.state = StateFailed
		return err
	}

	a.state = StateAuthenticated
	a.needSecondFactor = false
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.state = StateIdle
	a.needSecondFactor = false
	return nil
}

func (a *authService) State() LoginState {
	return a.state
}

func (a *authService) SecondFactorRequired() bool {
	return a.needSecondFactor
}

func (a *authService) NoteEdit() {
	if a.state == StateFailed {
		a.state = StateIdle
	}
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
