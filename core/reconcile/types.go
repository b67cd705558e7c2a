package reconcile

import (
	"errors"
	"time"
)

// VersionRecord is one published build of a package as reported upstream.
type VersionRecord struct {
	// Name is the package name.
	Name string `json:"name"`

	// Version is the version number, compared only for equality.
	Version string `json:"version"`

	// Platform distinguishes platform-specific builds from the canonical one.
	Platform string `json:"platform,omitempty"`
}

// Format returns the string form of the record: the bare version for the canonical
// platform (or no platform), "version,platform" otherwise.
func (r VersionRecord) Format(canonicalPlatform string) string {
	if r.Platform == "" || r.Platform == canonicalPlatform {
		return r.Version
	}
	return r.Version + "," + r.Platform
}

// Release is one entry of a newest-first release stream.
type Release struct {
	// Name is the owning package name.
	Name string

	// Version is the released version string as it is stored in the mirror.
	Version string

	// PublishedAt is the upstream publish time. Zero when the source does not report one.
	PublishedAt time.Time
}

// Catalog maps package names to their raw version records.
type Catalog map[string][]VersionRecord

// DiffResult is the outcome of a full reconciliation pass.
type DiffResult struct {
	// Changed maps every package written by the pass to its previous version list.
	// Packages seen for the first time map to nil.
	Changed map[string][]string `json:"changed"`

	// Removed lists packages deleted from the mirror, sorted.
	Removed []string `json:"removed"`

	// Fetched is the number of packages in the fetched catalog.
	Fetched int `json:"fetched"`

	// Unchanged counts fetched packages that needed no write.
	Unchanged int `json:"unchanged"`

	// InvalidationFailures counts names whose cache invalidation failed after commit.
	InvalidationFailures int `json:"invalidation_failures"`

	// Partial is set when the fetched catalog was truncated; no package was removed.
	Partial bool `json:"partial,omitempty"`
}

// ChangedNames returns the changed package names, sorted.
func (d *DiffResult) ChangedNames() []string {
	return sortedKeys(d.Changed)
}

// Empty reports whether the pass neither changed nor removed anything.
func (d *DiffResult) Empty() bool {
	return len(d.Changed) == 0 && len(d.Removed) == 0
}

// IncrementalResult is the outcome of an incremental pass.
type IncrementalResult struct {
	// Changed lists touched packages in the order they were first touched.
	Changed []string `json:"changed"`

	// Scanned counts releases consumed from the stream, including the known one that stopped it.
	Scanned int `json:"scanned"`

	// FellBack is set when the stream violated release order and a full pass ran instead.
	FellBack bool `json:"fell_back"`

	// Full holds the full pass result when FellBack is set.
	Full *DiffResult `json:"full,omitempty"`

	// InvalidationFailures counts names whose cache invalidation failed after commit.
	InvalidationFailures int `json:"invalidation_failures"`
}

var (
	// ErrUnknownFamily is returned for a family no adapter is registered for.
	ErrUnknownFamily = errors.New("unknown catalog family")

	// ErrIncrementalUnsupported is returned when a family cannot stream releases.
	ErrIncrementalUnsupported = errors.New("incremental sync not supported")

	// ErrReleaseOrder is returned when a release stream is not newest-first.
	ErrReleaseOrder = errors.New("release stream out of order")

	// ErrInvalidRecord is returned when a registered release lacks a name or version.
	ErrInvalidRecord = errors.New("invalid release record")

	// ErrPartialCatalog is returned alongside a catalog that does not cover the whole upstream.
	ErrPartialCatalog = errors.New("partial catalog")
)
