package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"catalog-mirror/core/cache"
	"catalog-mirror/core/logger"
	"catalog-mirror/core/mirror"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Spec binds a family adapter to the mirror store it reconciles into.
type Spec struct {
	// Adapter provides family-specific fetching and version picking.
	Adapter Adapter

	// Store is the family's mirror. Families never share a store.
	Store mirror.Store
}

// Orchestrator runs fetch, pick, reconcile and invalidate passes per family.
// Passes of one family are serialized whatever their mode; families run independently.
type Orchestrator struct {
	specs       map[string]*Spec
	locks       map[string]*sync.Mutex
	invalidator cache.Invalidator
	logger      *zap.Logger
	sf          singleflight.Group
}

// NewOrchestrator creates an orchestrator for the given families.
func NewOrchestrator(invalidator cache.Invalidator, log *zap.Logger, specs ...*Spec) *Orchestrator {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	o := &Orchestrator{
		specs:       make(map[string]*Spec, len(specs)),
		locks:       make(map[string]*sync.Mutex, len(specs)),
		invalidator: invalidator,
		logger:      log,
	}
	for _, spec := range specs {
		name := spec.Adapter.Name()
		o.specs[name] = spec
		o.locks[name] = &sync.Mutex{}
	}
	return o
}

// Families returns the registered family names, sorted.
func (o *Orchestrator) Families() []string {
	return sortedKeys(o.specs)
}

// SupportsIncremental reports whether family can run incremental passes.
func (o *Orchestrator) SupportsIncremental(family string) bool {
	spec, ok := o.specs[family]
	if !ok {
		return false
	}
	_, ok = spec.Adapter.(IncrementalAdapter)
	return ok
}

func (o *Orchestrator) spec(family string) (*Spec, error) {
	spec, ok := o.specs[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	return spec, nil
}

// FullSync fetches the complete catalog of family and reconciles the mirror against it.
// Concurrent calls for the same family share one pass.
func (o *Orchestrator) FullSync(ctx context.Context, family string) (*DiffResult, error) {
	spec, err := o.spec(family)
	if err != nil {
		return nil, err
	}

	v, err, _ := o.sf.Do(family+"|full", func() (interface{}, error) {
		lock := o.locks[family]
		lock.Lock()
		defer lock.Unlock()
		return o.fullSync(ctx, spec)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DiffResult), nil
}

func (o *Orchestrator) fullSync(ctx context.Context, spec *Spec) (*DiffResult, error) {
	family := spec.Adapter.Name()
	l := logger.ForFamily(o.logger, family)
	start := time.Now()

	catalog, partial, err := fetchCatalog(ctx, spec.Adapter)
	if err != nil {
		l.Error("Catalog fetch failed", zap.Error(err))
		return nil, err
	}
	fetchDuration := time.Since(start)

	reconcileFn := ReconcileAll
	if partial {
		l.Warn("Catalog is truncated, skipping removals", zap.Int("fetched", len(catalog)))
		reconcileFn = ReconcilePartial
	}
	result, err := reconcileFn(ctx, spec.Store, Canonicalize(spec.Adapter, catalog))
	if err != nil {
		l.Error("Full reconciliation failed", zap.Error(err))
		return nil, err
	}

	names := append(result.ChangedNames(), result.Removed...)
	result.InvalidationFailures = o.invalidate(ctx, l, family, names)

	l.Info("Full sync finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("unchanged", result.Unchanged),
		zap.Int("changed", len(result.Changed)),
		zap.Int("removed", len(result.Removed)),
		zap.Int("invalidation_failures", result.InvalidationFailures),
		zap.Bool("partial", result.Partial),
		zap.Duration("fetch_duration", fetchDuration),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// PlanSync fetches the catalog of family and returns what a full sync would change,
// without writing anything.
func (o *Orchestrator) PlanSync(ctx context.Context, family string) (*Plan, error) {
	spec, err := o.spec(family)
	if err != nil {
		return nil, err
	}

	catalog, partial, err := fetchCatalog(ctx, spec.Adapter)
	if err != nil {
		return nil, err
	}

	known, err := spec.Store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s mirror: %w", family, err)
	}
	plan := BuildPlan(known, Canonicalize(spec.Adapter, catalog))
	if partial {
		plan.KeepMissing()
	}
	return plan, nil
}

// fetchCatalog fetches the catalog of adapter and reports whether it is truncated.
func fetchCatalog(ctx context.Context, adapter Adapter) (Catalog, bool, error) {
	catalog, err := adapter.FetchAll(ctx)
	if errors.Is(err, ErrPartialCatalog) && catalog != nil {
		return catalog, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch %s catalog: %w", adapter.Name(), err)
	}
	return catalog, false, nil
}

// IncrementalSync records the newest releases of family. When the release stream turns out
// not to be newest-first the pass is discarded and a full sync runs instead.
func (o *Orchestrator) IncrementalSync(ctx context.Context, family string) (*IncrementalResult, error) {
	spec, err := o.spec(family)
	if err != nil {
		return nil, err
	}
	adapter, ok := spec.Adapter.(IncrementalAdapter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIncrementalUnsupported, family)
	}

	v, err, _ := o.sf.Do(family+"|incremental", func() (interface{}, error) {
		lock := o.locks[family]
		lock.Lock()
		defer lock.Unlock()
		return o.incrementalSync(ctx, spec, adapter)
	})
	if err != nil {
		return nil, err
	}
	return v.(*IncrementalResult), nil
}

func (o *Orchestrator) incrementalSync(ctx context.Context, spec *Spec, adapter IncrementalAdapter) (*IncrementalResult, error) {
	family := adapter.Name()
	l := logger.ForFamily(o.logger, family)
	start := time.Now()

	result, err := ReconcileIncremental(ctx, spec.Store, adapter.StreamReleases(ctx))
	if errors.Is(err, ErrReleaseOrder) {
		l.Warn("Release stream out of order, falling back to full sync", zap.Error(err))
		full, fullErr := o.fullSync(ctx, spec)
		if fullErr != nil {
			return nil, fullErr
		}
		return &IncrementalResult{
			Changed:              append(full.ChangedNames(), full.Removed...),
			FellBack:             true,
			Full:                 full,
			InvalidationFailures: full.InvalidationFailures,
		}, nil
	}
	if err != nil {
		l.Error("Incremental reconciliation failed", zap.Error(err))
		return nil, err
	}

	result.InvalidationFailures = o.invalidate(ctx, l, family, result.Changed)

	l.Info("Incremental sync finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("changed", len(result.Changed)),
		zap.Int("invalidation_failures", result.InvalidationFailures),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// Register merges a single out-of-band release into the mirror of family and invalidates
// the package's cache keys when the row changed.
func (o *Orchestrator) Register(ctx context.Context, family string, record VersionRecord) (bool, error) {
	spec, err := o.spec(family)
	if err != nil {
		return false, err
	}

	lock := o.locks[family]
	lock.Lock()
	defer lock.Unlock()

	l := logger.ForFamily(o.logger, family)
	changed, err := Register(ctx, spec.Store, record.Name, spec.Adapter.Format(record))
	if err != nil {
		return false, err
	}

	if changed {
		o.invalidate(ctx, l, family, []string{record.Name})
	}
	l.Info("Registered release",
		zap.String("name", record.Name),
		zap.String("version", record.Version),
		zap.String("platform", record.Platform),
		zap.Bool("changed", changed),
	)
	return changed, nil
}

// Lookup returns the mirrored versions of one package.
func (o *Orchestrator) Lookup(ctx context.Context, family, name string) ([]string, error) {
	spec, err := o.spec(family)
	if err != nil {
		return nil, err
	}
	return spec.Store.Get(ctx, name)
}

// invalidate issues one invalidation per name. Failures are logged and counted; the mirror
// is already committed, so they only leave a bounded staleness window.
func (o *Orchestrator) invalidate(ctx context.Context, l *zap.Logger, family string, names []string) int {
	sort.Strings(names)
	failures := 0
	for _, name := range names {
		if err := o.invalidator.Invalidate(ctx, cache.Keys(family, name)); err != nil {
			failures++
			l.Warn("Cache invalidation failed", zap.String("name", name), zap.Error(err))
		}
	}
	return failures
}
