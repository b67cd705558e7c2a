package mirror_test

import (
	"context"
	"errors"
	"testing"

	"catalog-mirror/core/database"
	"catalog-mirror/core/mirror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *mirror.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := mirror.NewGormStore(db, "remote_gems")
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestGormStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "rails")
	assert.ErrorIs(t, err, mirror.ErrNotFound)

	require.NoError(t, store.Set(ctx, "rails", []string{"7.1.0", "7.0.8"}))
	versions, err := store.Get(ctx, "rails")
	require.NoError(t, err)
	assert.Equal(t, []string{"7.1.0", "7.0.8"}, versions)

	// Overwrite keeps one row per name
	require.NoError(t, store.Set(ctx, "rails", []string{"7.2.0", "7.1.0", "7.2.0", ""}))
	versions, err = store.Get(ctx, "rails")
	require.NoError(t, err)
	assert.Equal(t, []string{"7.2.0", "7.1.0"}, versions)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.Delete(ctx, "rails"))
	require.NoError(t, store.Delete(ctx, "rails"), "deleting an absent row is a no-op")

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGormStore_NamesAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "Rails", []string{"0.9.0"}))
	require.NoError(t, store.Set(ctx, "rails", []string{"7.1.0"}))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Rails": {"0.9.0"}, "rails": {"7.1.0"}}, all)

	require.NoError(t, store.Delete(ctx, "Rails"))
	versions, err := store.Get(ctx, "rails")
	require.NoError(t, err)
	assert.Equal(t, []string{"7.1.0"}, versions)
}

func TestGormStore_RunInTransaction(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Set(ctx, "a", []string{"1.0"}))

	t.Run("Commit", func(t *testing.T) {
		err := store.RunInTransaction(ctx, func(tx mirror.Store) error {
			if err := tx.Set(ctx, "b", []string{"2.0"}); err != nil {
				return err
			}
			return tx.Set(ctx, "a", []string{"1.1", "1.0"})
		})
		require.NoError(t, err)

		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"a": {"1.1", "1.0"}, "b": {"2.0"}}, all)
	})

	t.Run("Rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.RunInTransaction(ctx, func(tx mirror.Store) error {
			if err := tx.Set(ctx, "c", []string{"3.0"}); err != nil {
				return err
			}
			if err := tx.Delete(ctx, "a"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"a": {"1.1", "1.0"}, "b": {"2.0"}}, all)
	})
}

func TestGormStore_CheckSchema(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	assert.NoError(t, store.CheckSchema(ctx))

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	err = mirror.NewGormStore(db, "remote_modules").CheckSchema(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"1.0", "2.0"}, mirror.Normalize([]string{"1.0", "", "2.0", "1.0"}))
	assert.Empty(t, mirror.Normalize(nil))
}
