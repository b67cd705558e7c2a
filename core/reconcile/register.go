package reconcile

import (
	"context"
	"errors"
	"fmt"

	"catalog-mirror/core/mirror"
)

// Register merges one version into the mirror row of name without a full fetch.
// Existing versions keep their order and the new one is appended.
// It reports whether the row changed.
func Register(ctx context.Context, store mirror.Store, name, version string) (bool, error) {
	if name == "" || version == "" {
		return false, fmt.Errorf("%w: register needs a name and a version, got %q %q", ErrInvalidRecord, name, version)
	}

	changed := false
	err := store.RunInTransaction(ctx, func(tx mirror.Store) error {
		existing, err := tx.Get(ctx, name)
		if err != nil && !errors.Is(err, mirror.ErrNotFound) {
			return err
		}
		if contains(existing, version) {
			return nil
		}

		changed = true
		return tx.Set(ctx, name, merge(existing, []string{version}))
	})
	if err != nil {
		return false, fmt.Errorf("failed to register %s %s: %w", name, version, err)
	}

	return changed, nil
}
