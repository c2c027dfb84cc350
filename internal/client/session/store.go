// Package session holds the profile of the currently authenticated user.
//
// The store is an explicit, injectable container created at application start
// and passed to consumers; only the boolean authenticated flag (plus the last
// used username) outlives the process, via the state repository.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cofrap/cofrap-cli/internal/client/repositories/state"
	"github.com/cofrap/cofrap-cli/internal/dbx"
	"github.com/cofrap/cofrap-cli/internal/logging"
)

// Profile describes the authenticated user. It is replaced wholesale on each
// successful login, never patched field by field.
type Profile struct {
	UserID         int64
	Username       string
	FirstName      string
	HasTwoFactor   bool
	LastActivityAt *time.Time
	DarkMode       bool
	Applications   []string
}

// Store owns the Profile and the authenticated flag.
//
// Invariant: the flag is true exactly when the profile was populated by a
// successful login in this process. A flag restored from disk without a
// profile is stale and gets cleared (the profile itself is never persisted).
type Store struct {
	db     *sql.DB
	logger logging.Logger

	profile       Profile
	authenticated bool
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, logger: logger.With("component", "session")}
}

func (s *Store) repo(db dbx.DBTX) state.Repository {
	return state.NewSQLiteRepository(db)
}

// Restore reconciles persisted state at startup. A dangling authenticated
// flag (no profile can have survived the restart) is cleared so the console
// starts on the login screen.
func (s *Store) Restore(ctx context.Context) error {
	flag, err := s.repo(s.db).Get(ctx, state.KeyAuthenticated)
	if err != nil {
		return fmt.Errorf("restoring session state: %w", err)
	}
	if len(flag) > 0 {
		s.logger.Warn(ctx, "stale authenticated flag found on startup, forcing re-login")
		if err := s.repo(s.db).Delete(ctx, state.KeyAuthenticated); err != nil {
			return fmt.Errorf("clearing stale session flag: %w", err)
		}
	}
	return nil
}

// SetProfile replaces the profile wholesale, marks the session authenticated,
// and persists the flag and the username in one transaction.
func (s *Store) SetProfile(ctx context.Context, p Profile) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, state.KeyAuthenticated, []byte("1")); err != nil {
			return err
		}
		return repo.Set(ctx, state.KeyLastUsername, []byte(p.Username))
	})
	if err != nil {
		return fmt.Errorf("persisting session state: %w", err)
	}

	s.profile = p
	s.authenticated = true
	return nil
}

// Clear resets the profile to its zero value and drops the persisted flag.
// Idempotent: clearing an already-clear store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, state.KeyAuthenticated); err != nil {
		return fmt.Errorf("clearing session state: %w", err)
	}
	s.profile = Profile{}
	s.authenticated = false
	return nil
}

// Profile returns the current profile; the zero Profile when unauthenticated.
func (s *Store) Profile() Profile {
	return s.profile
}

func (s *Store) Authenticated() bool {
	return s.authenticated
}

// LastUsername returns the username of the last successful login, persisted
// across restarts. Empty when nobody logged in yet.
func (s *Store) LastUsername(ctx context.Context) string {
	v, err := s.repo(s.db).Get(ctx, state.KeyLastUsername)
	if err != nil {
		s.logger.Warn(ctx, "reading last username", "err", err)
		return ""
	}
	return string(v)
}
