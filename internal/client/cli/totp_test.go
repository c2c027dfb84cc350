package cli

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cofrap/cofrap-cli/internal/client/services"
)

var codeLine = regexp.MustCompile(`Current code: \d{6} `)

func TestTOTPPreview_UsesEnrollmentSecret(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{
		Step:            3,
		TwoFactorSecret: "JBSWY3DPEHPK3PXP",
	}}
	app := &App{enroll: enroll}

	out := captureOutput(t)

	require.NoError(t, app.TOTPPreview(context.Background()))
	assert.Regexp(t, codeLine, strings.Join(*out, ""))
}

func TestTOTPPreview_PromptsForSecret(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{Step: 1}}
	app := &App{enroll: enroll}

	stubInput(t, []string{"JBSWY3DPEHPK3PXP"}, "")
	out := captureOutput(t)

	require.NoError(t, app.TOTPPreview(context.Background()))
	assert.Regexp(t, codeLine, strings.Join(*out, ""))
}

func TestTOTPPreview_NoSecretGiven(t *testing.T) {
	enroll := &fakeEnroll{st: services.EnrollmentState{Step: 1}}
	app := &App{enroll: enroll}

	stubInput(t, []string{""}, "")
	out := captureOutput(t)

	require.NoError(t, app.TOTPPreview(context.Background()))
	assert.Contains(t, strings.Join(*out, ""), "No secret given.")
}
