package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cofrap/cofrap-cli/internal/client/api"
	"github.com/cofrap/cofrap-cli/internal/client/services"
)

type fakeEnroll struct {
	st services.EnrollmentState

	passwordErr  error
	twoFactorErr error

	passwordCalls  int
	twoFactorCalls int
	resetCalls     int
}

func (f *fakeEnroll) RequestPassword(ctx context.Context, username string) error {
	f.passwordCalls++
	if f.passwordErr != nil {
		return f.passwordErr
	}
	f.st = services.EnrollmentState{
		Step:              2,
		Username:          username,
		GeneratedPassword: "gen-pass",
		PasswordQR:        []byte{0x89, 'P', 'N', 'G'},
	}
	return nil
}

func (f *fakeEnroll) RequestTwoFactor(ctx context.Context) error {
	f.twoFactorCalls++
	if f.twoFactorErr != nil {
		return f.twoFactorErr
	}
	f.st.Step = 3
	f.st.TwoFactorSecret = "JBSWY3DPEHPK3PXP"
	f.st.TwoFactorQR = []byte{0x89, 'P', 'N', 'G'}
	f.st.TOTPURI = "otpauth://totp/COFRAP:" + f.st.Username + "?secret=JBSWY3DPEHPK3PXP"
	return nil
}

func (f *fakeEnroll) Reset() {
	f.resetCalls++
	f.st = services.EnrollmentState{Step: 1}
}

func (f *fakeEnroll) State() services.EnrollmentState { return f.st }

func TestSignup_FullSequence(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{Step: 1}}
	app := &App{enroll: enroll}

	// username, skip password QR save, confirm 2FA, skip 2FA QR save,
	// skip authenticator check
	stubInput(t, []string{"alice", "n", "", "n", "n"}, "")
	out := captureOutput(t)

	require.NoError(t, app.Signup(context.Background()))

	assert.Equal(t, 1, enroll.passwordCalls)
	assert.Equal(t, 1, enroll.twoFactorCalls)
	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "gen-pass")
	assert.Contains(t, joined, "JBSWY3DPEHPK3PXP")
	assert.Contains(t, joined, "Enrollment complete")
}

func TestSignup_UsernameTaken(t *testing.T) {
	enroll := &fakeEnroll{
		st:          services.EnrollmentState{Step: 1},
		passwordErr: fmt.Errorf("%w: user exists", api.ErrUserExists),
	}
	app := &App{enroll: enroll}

	stubInput(t, []string{"alice"}, "")
	out := captureOutput(t)

	err := app.Signup(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, enroll.twoFactorCalls)
	assert.Contains(t, strings.Join(*out, ""), "already taken")
}

func TestSignup_DeclineTwoFactor(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{Step: 1}}
	app := &App{enroll: enroll}

	stubInput(t, []string{"alice", "n", "n"}, "")
	out := captureOutput(t)

	require.NoError(t, app.Signup(context.Background()))

	assert.Equal(t, 0, enroll.twoFactorCalls)
	assert.Contains(t, strings.Join(*out, ""), "finish 2FA enrollment later")
}

func TestSignup_ResumesAtTwoFactorStep(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{
		Step:     2,
		Username: "alice",
	}}
	app := &App{enroll: enroll}

	// confirm 2FA, skip QR save, skip authenticator check
	stubInput(t, []string{"", "n", "n"}, "")
	captureOutput(t)

	require.NoError(t, app.Signup(context.Background()))

	assert.Equal(t, 0, enroll.passwordCalls)
	assert.Equal(t, 1, enroll.twoFactorCalls)
}

func TestSignup_CompletedPrintsSummaryWithoutRestart(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{
		Step:            3,
		Username:        "alice",
		TwoFactorSecret: "JBSWY3DPEHPK3PXP",
	}}
	app := &App{enroll: enroll}

	stubInput(t, []string{"n"}, "")
	out := captureOutput(t)

	require.NoError(t, app.Signup(context.Background()))

	assert.Equal(t, 0, enroll.resetCalls)
	assert.Equal(t, 0, enroll.passwordCalls)
	assert.Contains(t, strings.Join(*out, ""), "JBSWY3DPEHPK3PXP")
}

func TestSignup_CompletedRestartsOnConfirm(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{Step: 3, Username: "alice"}}
	app := &App{enroll: enroll}

	// restart, username, skip QR save, decline 2FA
	stubInput(t, []string{"y", "bob", "n", "n"}, "")
	captureOutput(t)

	require.NoError(t, app.Signup(context.Background()))

	assert.Equal(t, 1, enroll.resetCalls)
	assert.Equal(t, 1, enroll.passwordCalls)
	assert.Equal(t, "bob", enroll.st.Username)
}

func TestSaveQR_NothingToSave(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{Step: 1}}
	app := &App{enroll: enroll}

	out := captureOutput(t)

	require.NoError(t, app.SaveQR(context.Background()))
	assert.Contains(t, strings.Join(*out, ""), "No QR codes")
}

func TestSaveQR_WritesFile(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{
		Step:       2,
		Username:   "alice",
		PasswordQR: []byte{0x89, 'P', 'N', 'G'},
	}}
	app := &App{enroll: enroll}

	path := t.TempDir() + "/qr.png"
	stubInput(t, []string{"y", path}, "")
	out := captureOutput(t)

	require.NoError(t, app.SaveQR(context.Background()))
	assert.Contains(t, strings.Join(*out, ""), "Saved "+path)
}

func TestEnrollMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"username required", services.ErrUsernameRequired, "username is required"},
		{"user exists", api.ErrUserExists, "already taken"},
		{"user not found", api.ErrUserNotFound, "User not found"},
		{"already enrolled", api.ErrTwoFactorEnabled, "already enabled"},
		{"unreachable", api.ErrUnavailable, "Could not reach the server."},
		{"unknown", errors.New("boom"), "Server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, enrollMessage(tt.err), tt.want)
		})
	}
}
