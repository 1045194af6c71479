package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/eshmelev/dropspace/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))

	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, store.Delete(ctx, "k"))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestSlotIdentityRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot(newTestStore(t))

	identity, err := slot.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)

	want := &models.Identity{
		ID:        "id1",
		Email:     "ann@example.com",
		Name:      "Ann",
		Prefs:     map[string]string{"theme": "dark"},
		CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, slot.SaveIdentity(ctx, want))

	identity, err = slot.Identity(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, identity)

	require.NoError(t, slot.ClearIdentity(ctx))
	identity, err = slot.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestSlotToken(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot(newTestStore(t))

	token, err := slot.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, slot.SaveToken(ctx, "tok-1"))
	token, err = slot.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, slot.Clear(ctx))
	token, err = slot.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
