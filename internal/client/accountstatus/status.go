// Package accountstatus derives the dashboard's account-security status from
// the last-activity timestamp and the expiry policy. Derivation is pure; the
// Watcher recomputes it on a timer for live display.
package accountstatus

import "time"

// Policy is the account-expiry policy enforced by the backend: accounts
// expire after ExpiryWindowDays without activity, with a warning once
// WarningWindowDays or fewer remain.
type Policy struct {
	ExpiryWindowDays  int
	WarningWindowDays int
}

// DefaultPolicy matches the backend's six-month window.
func DefaultPolicy() Policy {
	return Policy{ExpiryWindowDays: 180, WarningWindowDays: 30}
}

// Status is a derived view, recomputed on demand and never stored.
type Status struct {
	IsActive              bool
	IsExpiringSoon        bool
	DaysUntilExpiry       int
	DaysSinceLastActivity int
}

// Derive computes the status for the given last-activity timestamp at the
// given reference time. A nil timestamp means the activity date is unknown:
// the account is reported inactive with zero days everywhere.
func Derive(lastActivity *time.Time, now time.Time, p Policy) Status {
	if lastActivity == nil {
		return Status{}
	}

	days := int(now.Sub(*lastActivity).Hours() / 24)
	if days < 0 {
		days = 0
	}

	remaining := p.ExpiryWindowDays - days
	if remaining < 0 {
		remaining = 0
	}

	active := days < p.ExpiryWindowDays

	return Status{
		IsActive:              active,
		IsExpiringSoon:        active && remaining <= p.WarningWindowDays && remaining > 0,
		DaysUntilExpiry:       remaining,
		DaysSinceLastActivity: days,
	}
}
