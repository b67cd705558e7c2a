package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"catalog-mirror/core/config"
	"catalog-mirror/core/database"
	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"
	"catalog-mirror/feature/gems"
	"catalog-mirror/feature/modules"
)

// debug_package compares one package between the upstream catalog and the mirror.
// Usage: debug_package <gems|modules> <name>
func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: debug_package <gems|modules> <name>")
	}
	family, name := os.Args[1], os.Args[2]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	var spec *reconcile.Spec
	switch family {
	case gems.Family:
		f, err := gems.NewFamily(cfg.Gems, cfg.Upstream, db)
		if err != nil {
			log.Fatal(err)
		}
		spec = f.Spec()
	case modules.Family:
		f, err := modules.NewFamily(cfg.Modules, cfg.Upstream, db)
		if err != nil {
			log.Fatal(err)
		}
		spec = f.Spec()
	default:
		log.Fatalf("unknown family %q", family)
	}

	ctx := context.Background()

	fmt.Println("=== Upstream ===")
	catalog, err := spec.Adapter.FetchAll(ctx)
	partial := errors.Is(err, reconcile.ErrPartialCatalog) && catalog != nil
	if err != nil && !partial {
		log.Fatal(err)
	}
	fmt.Printf("Total packages upstream: %d\n", len(catalog))
	if partial {
		fmt.Printf("Listing is truncated: %v\n", err)
	}

	records, ok := catalog[name]
	if !ok {
		fmt.Println("NOT FOUND upstream")
	} else {
		for _, rec := range records {
			fmt.Printf("  record: version=%s platform=%q\n", rec.Version, rec.Platform)
		}
		fmt.Printf("Picked: %v\n", spec.Adapter.PickVersions(records))
	}

	fmt.Println("\n=== Mirror ===")
	versions, err := spec.Store.Get(ctx, name)
	switch {
	case errors.Is(err, mirror.ErrNotFound):
		fmt.Println("NOT FOUND in mirror")
	case err != nil:
		log.Fatal(err)
	default:
		fmt.Printf("Stored: %v\n", versions)
	}

	if ok {
		known := map[string][]string{}
		if versions != nil {
			known[name] = versions
		}
		plan := reconcile.BuildPlan(known, map[string][]string{name: spec.Adapter.PickVersions(records)})
		fmt.Printf("\nFull pass would write: %t\n", len(plan.Writes) > 0)
	}
}
