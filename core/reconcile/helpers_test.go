package reconcile

import (
	"context"
	"errors"
	"iter"
	"testing"

	"catalog-mirror/core/database"
	"catalog-mirror/core/mirror"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// newTestStore returns an empty mirror backed by in-memory SQLite.
func newTestStore(t *testing.T) *mirror.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := mirror.NewGormStore(db, "remote_gems")
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// seed writes rows outside of any reconciliation pass.
func seed(t *testing.T, store mirror.Store, rows map[string][]string) {
	t.Helper()
	for name, versions := range rows {
		require.NoError(t, store.Set(context.Background(), name, versions))
	}
}

func snapshot(t *testing.T, store mirror.Store) map[string][]string {
	t.Helper()
	all, err := store.GetAll(context.Background())
	require.NoError(t, err)
	return all
}

// failingStore fails the failOn-th Set or Delete performed through it or its transactions.
type failingStore struct {
	mirror.Store
	failOn int
	calls  *int
}

func newFailingStore(store mirror.Store, failOn int) *failingStore {
	calls := 0
	return &failingStore{Store: store, failOn: failOn, calls: &calls}
}

func (f *failingStore) hit() error {
	*f.calls++
	if *f.calls == f.failOn {
		return errBoom
	}
	return nil
}

func (f *failingStore) Set(ctx context.Context, name string, versions []string) error {
	if err := f.hit(); err != nil {
		return err
	}
	return f.Store.Set(ctx, name, versions)
}

func (f *failingStore) Delete(ctx context.Context, name string) error {
	if err := f.hit(); err != nil {
		return err
	}
	return f.Store.Delete(ctx, name)
}

func (f *failingStore) RunInTransaction(ctx context.Context, fn func(tx mirror.Store) error) error {
	return f.Store.RunInTransaction(ctx, func(tx mirror.Store) error {
		return fn(&failingStore{Store: tx, failOn: f.failOn, calls: f.calls})
	})
}

// fakeAdapter serves a fixed catalog.
type fakeAdapter struct {
	name     string
	catalog  Catalog
	fetchErr error
	fetches  int
	picker   Picker
}

func (a *fakeAdapter) Name() string {
	return a.name
}

func (a *fakeAdapter) FetchAll(ctx context.Context) (Catalog, error) {
	a.fetches++
	if a.fetchErr != nil && !errors.Is(a.fetchErr, ErrPartialCatalog) {
		return nil, a.fetchErr
	}
	return a.catalog, a.fetchErr
}

func (a *fakeAdapter) PickVersions(records []VersionRecord) []string {
	return a.picker.Pick(records)
}

func (a *fakeAdapter) Format(record VersionRecord) string {
	return record.Format(a.picker.CanonicalPlatform)
}

// fakeIncrementalAdapter additionally streams a fixed release list.
type fakeIncrementalAdapter struct {
	fakeAdapter
	releases  []Release
	streamErr error
	consumed  int
}

func (a *fakeIncrementalAdapter) StreamReleases(ctx context.Context) iter.Seq2[Release, error] {
	return streamOf(a.releases, a.streamErr, &a.consumed)
}

// streamOf yields releases and then err, if any, counting what the consumer pulled.
func streamOf(releases []Release, err error, consumed *int) iter.Seq2[Release, error] {
	return func(yield func(Release, error) bool) {
		for _, rel := range releases {
			if consumed != nil {
				*consumed++
			}
			if !yield(rel, nil) {
				return
			}
		}
		if err != nil {
			yield(Release{}, err)
		}
	}
}

// gems builds a catalog of canonical-platform records.
func gems(entries map[string][]string) Catalog {
	catalog := make(Catalog, len(entries))
	for name, versions := range entries {
		for _, v := range versions {
			catalog[name] = append(catalog[name], VersionRecord{Name: name, Version: v, Platform: "ruby"})
		}
	}
	return catalog
}
