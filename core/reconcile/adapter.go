package reconcile

import (
	"context"
	"iter"
)

// Adapter defines the family-specific parts of reconciliation: how the catalog is fetched
// and how a canonical version list is chosen per package.
type Adapter interface {
	// Name returns the family name (e.g., "gems", "modules").
	// It prefixes every cache key of the family.
	Name() string

	// FetchAll returns the complete upstream catalog.
	// A catalog that is knowingly truncated is returned together with an error wrapping
	// ErrPartialCatalog; any other error means the catalog must not be used.
	FetchAll(ctx context.Context) (Catalog, error)

	// PickVersions reduces the records of one package to its canonical version list.
	PickVersions(records []VersionRecord) []string

	// Format returns the string a single record is stored as.
	Format(record VersionRecord) string
}

// IncrementalAdapter is implemented by families whose upstream can stream releases
// newest-first.
type IncrementalAdapter interface {
	Adapter

	// StreamReleases yields releases newest-first. The sequence is finite and must be
	// restarted from the newest release on retry.
	StreamReleases(ctx context.Context) iter.Seq2[Release, error]
}
