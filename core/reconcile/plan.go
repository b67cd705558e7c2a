package reconcile

import (
	"context"
	"fmt"

	"catalog-mirror/core/mirror"
)

// Plan is the difference between a fetched canonical catalog and the known mirror state.
// It is computed without touching the store; Apply writes it.
type Plan struct {
	// Writes maps packages to the version list they must be stored with.
	Writes map[string][]string

	// Previous maps every written package to its known versions, nil when new.
	Previous map[string][]string

	// Removed lists known packages missing upstream, sorted.
	Removed []string

	// Unchanged counts fetched packages already covered by the mirror.
	Unchanged int

	// Fetched is the size of the fetched catalog.
	Fetched int

	// Partial is set when the fetched catalog was truncated. Removed is then empty.
	Partial bool
}

// BuildPlan diffs fetched against known.
// A known package whose versions already include every fetched version is left untouched:
// a change means a version appeared that the mirror did not have.
func BuildPlan(known, fetched map[string][]string) *Plan {
	plan := &Plan{
		Writes:   make(map[string][]string),
		Previous: make(map[string][]string),
		Fetched:  len(fetched),
	}

	for name, versions := range fetched {
		prev, exists := known[name]
		if exists && containsAll(prev, versions) {
			plan.Unchanged++
			continue
		}
		plan.Writes[name] = mirror.Normalize(versions)
		plan.Previous[name] = prev
	}

	for name := range known {
		if _, ok := fetched[name]; !ok {
			plan.Removed = append(plan.Removed, name)
		}
	}
	plan.Removed = sortedStrings(plan.Removed)

	return plan
}

// KeepMissing marks the plan as built from a truncated catalog and drops its removals:
// a package missing from a partial listing may still exist upstream.
func (p *Plan) KeepMissing() *Plan {
	p.Partial = true
	p.Removed = nil
	return p
}

// Empty reports whether applying the plan would not touch the store.
func (p *Plan) Empty() bool {
	return len(p.Writes) == 0 && len(p.Removed) == 0
}

// Apply performs the plan's writes and deletes through store.
// Callers pass a transaction-bound store so the plan applies atomically.
func (p *Plan) Apply(ctx context.Context, store mirror.Store) error {
	for _, name := range sortedKeys(p.Writes) {
		if err := store.Set(ctx, name, p.Writes[name]); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	for _, name := range p.Removed {
		if err := store.Delete(ctx, name); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// Result converts an applied plan into a DiffResult.
func (p *Plan) Result() *DiffResult {
	changed := make(map[string][]string, len(p.Previous))
	for name, prev := range p.Previous {
		changed[name] = prev
	}
	return &DiffResult{
		Changed:   changed,
		Removed:   append([]string{}, p.Removed...),
		Fetched:   p.Fetched,
		Unchanged: p.Unchanged,
		Partial:   p.Partial,
	}
}
