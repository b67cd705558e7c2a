package reconcile

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"catalog-mirror/core/mirror"
)

// ReconcileIncremental records the newest releases of a newest-first stream.
// Unknown packages get a row holding the release, known packages get the release prepended,
// and the first release the mirror already holds ends the scan: everything older is known.
// Rows are never deleted. The whole scan is one transaction; a stream error rolls it back.
//
// When releases carry publish times, a release newer than its predecessor fails the pass
// with ErrReleaseOrder, since the early exit is only sound for an ordered stream.
func ReconcileIncremental(ctx context.Context, store mirror.Store, releases iter.Seq2[Release, error]) (*IncrementalResult, error) {
	var result *IncrementalResult

	err := store.RunInTransaction(ctx, func(tx mirror.Store) error {
		result = &IncrementalResult{}
		touched := make(map[string]struct{})
		var previous time.Time

		for rel, err := range releases {
			if err != nil {
				return fmt.Errorf("release stream failed: %w", err)
			}
			result.Scanned++

			if !rel.PublishedAt.IsZero() {
				if !previous.IsZero() && rel.PublishedAt.After(previous) {
					return fmt.Errorf("%w: %s %s published at %s after %s",
						ErrReleaseOrder, rel.Name, rel.Version,
						rel.PublishedAt.Format(time.RFC3339), previous.Format(time.RFC3339))
				}
				previous = rel.PublishedAt
			}

			versions, err := tx.Get(ctx, rel.Name)
			switch {
			case errors.Is(err, mirror.ErrNotFound):
				if err := tx.Set(ctx, rel.Name, []string{rel.Version}); err != nil {
					return err
				}
			case err != nil:
				return err
			case contains(versions, rel.Version):
				// Reached the first known release
				return nil
			default:
				if err := tx.Set(ctx, rel.Name, prepend(rel.Version, versions)); err != nil {
					return err
				}
			}

			if _, ok := touched[rel.Name]; !ok {
				touched[rel.Name] = struct{}{}
				result.Changed = append(result.Changed, rel.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("incremental reconciliation rolled back: %w", err)
	}

	return result, nil
}
