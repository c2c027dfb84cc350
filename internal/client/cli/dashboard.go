package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cofrap/cofrap-cli/internal/client/accountstatus"
)

// Status prints the account-security widget: expiry standing derived from
// the last-activity timestamp, plus the 2FA state.
func (a *App) Status(_ context.Context) error {
	profile := a.store.Profile()
	st := accountstatus.Derive(profile.LastActivityAt, time.Now(), accountstatus.DefaultPolicy())

	printlnFn("Account status for " + profile.Username)
	printlnFn("  " + statusBadge(st))
	printlnFn("  Last activity: " + formatLastActivity(profile.LastActivityAt))
	if profile.LastActivityAt != nil {
		printlnFn(fmt.Sprintf("  Days since last activity: %d", st.DaysSinceLastActivity))
		printlnFn(fmt.Sprintf("  Days until expiry: %d", st.DaysUntilExpiry))
	}
	if profile.HasTwoFactor {
		printlnFn("  Two-factor authentication: enabled")
	} else {
		printlnFn("  Two-factor authentication: disabled (run 'signup' before your next login to enroll)")
	}
	if st.IsExpiringSoon {
		printlnFn(fmt.Sprintf("  Warning: your credentials expire in %d days. Sign in regularly to keep them active.", st.DaysUntilExpiry))
	}
	return nil
}

// ProfileInfo prints the identity card for the signed-in account.
func (a *App) ProfileInfo(_ context.Context) error {
	profile := a.store.Profile()
	st := accountstatus.Derive(profile.LastActivityAt, time.Now(), accountstatus.DefaultPolicy())

	printlnFn("Username: " + profile.Username)
	printlnFn(fmt.Sprintf("User ID:  %d", profile.UserID))
	printlnFn("Standing: " + statusBadge(st))
	return nil
}

// Watch re-derives the account status on the configured interval and prints
// a line per tick, like the dashboard's live refresh. Pressing Enter stops it.
func (a *App) Watch(ctx context.Context) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		_, _ = a.reader.ReadString('\n')
		cancel()
	}()

	printlnFn("Watching account status (press Enter to stop)...")

	w := accountstatus.NewWatcher(a.config.StatusRefreshInterval, accountstatus.DefaultPolicy())
	w.Run(watchCtx,
		func() *time.Time { return a.store.Profile().LastActivityAt },
		func(st accountstatus.Status) {
			printlnFn(time.Now().Format("15:04:05") + "  " + statusBadge(st))
		})

	return nil
}

func statusBadge(st accountstatus.Status) string {
	switch {
	case !st.IsActive:
		return "EXPIRED: credentials are more than 6 months old and must be regenerated"
	case st.IsExpiringSoon:
		return fmt.Sprintf("ACTIVE (expiring in %d days)", st.DaysUntilExpiry)
	default:
		return "ACTIVE"
	}
}

func formatLastActivity(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format("2006-01-02 15:04:05")
}
