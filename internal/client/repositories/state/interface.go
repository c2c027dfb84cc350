// Package state persists the small amount of client state that must survive
// restarts: the authenticated flag and the last used username. Everything
// else (the profile, enrollment progress) is in-memory only.
package state

import "context"

// Well-known keys.
const (
	KeyAuthenticated = "authenticated"
	KeyLastUsername  = "last_username"
)

type Repository interface {
	// Get returns nil (not an error) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
