package reconcile

import (
	"context"
	"fmt"

	"catalog-mirror/core/mirror"
)

// Canonicalize reduces a raw catalog to canonical version lists with the adapter's picker.
func Canonicalize(adapter Adapter, catalog Catalog) map[string][]string {
	canonical := make(map[string][]string, len(catalog))
	for name, records := range catalog {
		canonical[name] = adapter.PickVersions(records)
	}
	return canonical
}

// ReconcileAll brings the mirror in line with a canonical catalog.
// Loading the known rows, writing changed ones and deleting removed ones happen in one
// transaction; on error nothing is committed and no result is returned.
func ReconcileAll(ctx context.Context, store mirror.Store, fetched map[string][]string) (*DiffResult, error) {
	return reconcileAll(ctx, store, fetched, false)
}

// ReconcilePartial writes new and changed packages of a truncated catalog like ReconcileAll,
// but never removes a package.
func ReconcilePartial(ctx context.Context, store mirror.Store, fetched map[string][]string) (*DiffResult, error) {
	return reconcileAll(ctx, store, fetched, true)
}

func reconcileAll(ctx context.Context, store mirror.Store, fetched map[string][]string, partial bool) (*DiffResult, error) {
	var plan *Plan

	err := store.RunInTransaction(ctx, func(tx mirror.Store) error {
		known, err := tx.GetAll(ctx)
		if err != nil {
			return err
		}

		plan = BuildPlan(known, fetched)
		if partial {
			plan.KeepMissing()
		}
		return plan.Apply(ctx, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("full reconciliation rolled back: %w", err)
	}

	return plan.Result(), nil
}
