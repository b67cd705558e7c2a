package modules

import (
	"context"
	"iter"
	"sort"

	"catalog-mirror/core/reconcile"

	"github.com/Masterminds/semver/v3"
)

// Family is the catalog family name of modules.
const Family = "modules"

// Adapter reconciles the modules family against a Forge.
type Adapter struct {
	forge  *Forge
	picker reconcile.Picker
}

// NewAdapter creates the modules adapter.
func NewAdapter(forge *Forge) *Adapter {
	return &Adapter{forge: forge}
}

func (a *Adapter) Name() string {
	return Family
}

func (a *Adapter) FetchAll(ctx context.Context) (reconcile.Catalog, error) {
	return a.forge.Modules(ctx)
}

func (a *Adapter) StreamReleases(ctx context.Context) iter.Seq2[reconcile.Release, error] {
	return a.forge.Releases(ctx)
}

// PickVersions deduplicates the releases of a module and orders them newest first.
func (a *Adapter) PickVersions(records []reconcile.VersionRecord) []string {
	return SortVersions(a.picker.Pick(records))
}

// Format returns the stored form of a release. Modules have no platforms.
func (a *Adapter) Format(record reconcile.VersionRecord) string {
	return record.Version
}

// SortVersions returns versions ordered newest first by semantic version. Versions that do
// not parse follow the parsed ones in reverse lexical order.
func SortVersions(versions []string) []string {
	type entry struct {
		raw    string
		parsed *semver.Version
	}

	entries := make([]entry, len(versions))
	for i, v := range versions {
		parsed, err := semver.NewVersion(v)
		if err != nil {
			parsed = nil
		}
		entries[i] = entry{raw: v, parsed: parsed}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.parsed != nil && b.parsed != nil:
			if a.parsed.Equal(b.parsed) {
				return a.raw > b.raw
			}
			return a.parsed.GreaterThan(b.parsed)
		case a.parsed != nil:
			return true
		case b.parsed != nil:
			return false
		default:
			return a.raw > b.raw
		}
	})

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.raw
	}
	return sorted
}
