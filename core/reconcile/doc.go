// Package reconcile keeps a local mirror of a remote package catalog up to date.
//
// One algorithm serves every catalog family; an Adapter supplies what differs between
// families (how the catalog is fetched and how a canonical version list is picked).
//
// # Full sync
//
// ReconcileAll loads the known rows, diffs them against the fetched canonical catalog with
// BuildPlan and applies the plan, all in one transaction. A package counts as changed only
// when a version appeared that the mirror did not hold; packages missing upstream are
// removed. Nothing is committed when any step fails.
//
// # Incremental sync
//
// ReconcileIncremental walks a newest-first release stream, prepending unknown releases
// and stopping at the first release the mirror already holds. It never removes rows.
//
// # Orchestration
//
// Orchestrator ties fetch, pick, reconcile and cache invalidation together per family.
// Passes of one family hold the family lock, so full, incremental and registration
// writes never interleave. Cache keys are invalidated only after the transaction commits,
// and failed invalidations are logged rather than failing the pass.
//
// # Usage
//
//	orch := reconcile.NewOrchestrator(invalidator, log,
//	    &reconcile.Spec{Adapter: gems.NewAdapter(fetcher), Store: gemStore},
//	)
//	result, err := orch.FullSync(ctx, "gems")
package reconcile
