package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := Open(context.Background(), "file:staterepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`DELETE FROM state`)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestRepository_SetGet(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAuthenticated, []byte("1")))

	got, err := r.Get(ctx, KeyAuthenticated)
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	r := setupRepo(t)

	got, err := r.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_SetOverwrites(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyLastUsername, []byte("alice")))
	require.NoError(t, r.Set(ctx, KeyLastUsername, []byte("bob")))

	got, err := r.Get(ctx, KeyLastUsername)
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), got)
}

func TestRepository_DeleteAndClear(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAuthenticated, []byte("1")))
	require.NoError(t, r.Set(ctx, KeyLastUsername, []byte("alice")))

	require.NoError(t, r.Delete(ctx, KeyAuthenticated))
	got, err := r.Get(ctx, KeyAuthenticated)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.Clear(ctx))
	got, err = r.Get(ctx, KeyLastUsername)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_DeleteMissingIsNoError(t *testing.T) {
	r := setupRepo(t)
	require.NoError(t, r.Delete(context.Background(), "missing"))
}
