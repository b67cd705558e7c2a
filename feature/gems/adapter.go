package gems

import (
	"context"
	"fmt"

	"catalog-mirror/core/reconcile"
	"catalog-mirror/core/upstream"
)

const (
	// Family is the catalog family name of gems.
	Family = "gems"

	// CanonicalPlatform is the platform of pure-Ruby builds.
	CanonicalPlatform = "ruby"

	versionsPath = "/versions"
)

// Adapter fetches the gem catalog from a compact index registry.
type Adapter struct {
	client *upstream.Client
	picker reconcile.Picker
}

// NewAdapter creates the gems adapter on top of an upstream client.
func NewAdapter(client *upstream.Client) *Adapter {
	return &Adapter{
		client: client,
		picker: reconcile.Picker{CanonicalPlatform: CanonicalPlatform},
	}
}

// Name returns the family name.
func (a *Adapter) Name() string {
	return Family
}

// FetchAll downloads and parses the complete versions file.
func (a *Adapter) FetchAll(ctx context.Context) (reconcile.Catalog, error) {
	body, err := a.client.Get(ctx, versionsPath)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	catalog, err := ParseVersions(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.client.Resolve(versionsPath), err)
	}
	return catalog, nil
}

// PickVersions keeps one build per version, preferring the pure-Ruby one.
func (a *Adapter) PickVersions(records []reconcile.VersionRecord) []string {
	return a.picker.Pick(records)
}

// Format returns the stored form of a single build.
func (a *Adapter) Format(record reconcile.VersionRecord) string {
	if record.Platform == "" {
		record.Platform = CanonicalPlatform
	}
	return record.Format(CanonicalPlatform)
}
