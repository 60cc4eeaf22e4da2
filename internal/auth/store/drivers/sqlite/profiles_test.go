package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	// A file-backed database per test; :memory: would give every pooled
	// connection its own empty database.
	st, err := NewStore("file:" + filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestProfilesCreateAndGet(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	p := domain.Profile{
		UID:       "uid-1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Extra:     map[string]any{"plan": "free"},
	}
	require.NoError(t, st.Profiles().Create(ctx, p))

	t.Run("by uid", func(t *testing.T) {
		got, err := st.Profiles().GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		require.Equal(t, "ada@example.com", got.Email)
		require.Equal(t, "Ada", got.FirstName)
		require.Equal(t, "Lovelace", got.LastName)
		require.Equal(t, "ada", got.Username)
		require.Equal(t, map[string]any{"plan": "free"}, got.Extra)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("by username", func(t *testing.T) {
		got, err := st.Profiles().GetByUsername(ctx, "ada")
		require.NoError(t, err)
		require.Equal(t, "uid-1", got.UID)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := st.Profiles().GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "uid-1", got.UID)
	})

	t.Run("missing rows map to ErrNotFound", func(t *testing.T) {
		_, err := st.Profiles().GetByUID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Profiles().GetByUsername(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Profiles().GetByEmail(ctx, "nope@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestProfilesOptionalFields(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	// Email-only flow: no names, no username, no seed values.
	require.NoError(t, st.Profiles().Create(ctx, domain.Profile{
		UID:   "uid-2",
		Email: "bare@example.com",
	}))

	got, err := st.Profiles().GetByUID(ctx, "uid-2")
	require.NoError(t, err)
	require.Empty(t, got.FirstName)
	require.Empty(t, got.LastName)
	require.Empty(t, got.Username)
	require.Nil(t, got.Extra)
}

func TestProfilesUniqueConstraints(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Profiles().Create(ctx, domain.Profile{
		UID: "uid-1", Email: "a@example.com", Username: "taken",
	}))

	t.Run("duplicate uid", func(t *testing.T) {
		err := st.Profiles().Create(ctx, domain.Profile{
			UID: "uid-1", Email: "b@example.com",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := st.Profiles().Create(ctx, domain.Profile{
			UID: "uid-2", Email: "b@example.com", Username: "taken",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("many profiles without usernames coexist", func(t *testing.T) {
		// The username index is partial; NULLs never collide.
		require.NoError(t, st.Profiles().Create(ctx, domain.Profile{
			UID: "uid-3", Email: "c@example.com",
		}))
		require.NoError(t, st.Profiles().Create(ctx, domain.Profile{
			UID: "uid-4", Email: "d@example.com",
		}))
	})
}

func TestProfilesUpdate(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Profiles().Create(ctx, domain.Profile{
		UID: "uid-1", Email: "old@example.com", FirstName: "Old", LastName: "Name", Username: "oldname",
	}))

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		err := st.Profiles().Update(ctx, "uid-1", domain.ProfileUpdate{
			Email: "new@example.com",
		})
		require.NoError(t, err)

		got, err := st.Profiles().GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		require.Equal(t, "new@example.com", got.Email)
		require.Equal(t, "Old", got.FirstName)
		require.Equal(t, "oldname", got.Username)
	})

	t.Run("full update", func(t *testing.T) {
		first, last, user := "New", "Person", "newname"
		err := st.Profiles().Update(ctx, "uid-1", domain.ProfileUpdate{
			Email:     "new@example.com",
			FirstName: &first,
			LastName:  &last,
			Username:  &user,
		})
		require.NoError(t, err)

		got, err := st.Profiles().GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		require.Equal(t, "New", got.FirstName)
		require.Equal(t, "Person", got.LastName)
		require.Equal(t, "newname", got.Username)
	})

	t.Run("unknown uid", func(t *testing.T) {
		err := st.Profiles().Update(ctx, "ghost", domain.ProfileUpdate{Email: "x@example.com"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("username collision on update", func(t *testing.T) {
		require.NoError(t, st.Profiles().Create(ctx, domain.Profile{
			UID: "uid-2", Email: "other@example.com", Username: "other",
		}))

		user := "newname" // already held by uid-1
		err := st.Profiles().Update(ctx, "uid-2", domain.ProfileUpdate{
			Email:    "other@example.com",
			Username: &user,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Profiles().Create(ctx, domain.Profile{
				UID: "uid-tx", Email: "tx@example.com",
			})
		})
		require.NoError(t, err)

		_, err = st.Profiles().GetByUID(ctx, "uid-tx")
		require.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Profiles().Create(ctx, domain.Profile{
				UID: "uid-rollback", Email: "rb@example.com",
			}); err != nil {
				return err
			}
			return context.Canceled
		})
		require.ErrorIs(t, err, context.Canceled)

		_, err = st.Profiles().GetByUID(ctx, "uid-rollback")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
