package cmd

import (
	"fmt"

	"catalog-mirror/core/cache"
	"catalog-mirror/core/config"
	"catalog-mirror/core/database"
	"catalog-mirror/core/logger"
	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"
	"catalog-mirror/core/storage"
	"catalog-mirror/feature/gems"
	"catalog-mirror/feature/modules"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs: configuration, logger, mirror database and the
// orchestrator over the enabled families.
type app struct {
	cfg          *config.Config
	logger       *zap.Logger
	db           *gorm.DB
	stores       map[string]*mirror.GormStore
	pages        *cache.StorageInvalidator
	orchestrator *reconcile.Orchestrator
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &app{cfg: cfg, logger: l, db: db, stores: make(map[string]*mirror.GormStore)}

	var specs []*reconcile.Spec
	if cfg.Gems.Enabled {
		family, err := gems.NewFamily(cfg.Gems, cfg.Upstream, db)
		if err != nil {
			return nil, fmt.Errorf("failed to set up gems: %w", err)
		}
		a.stores[gems.Family] = family.Store
		specs = append(specs, family.Spec())
	}
	if cfg.Modules.Enabled {
		family, err := modules.NewFamily(cfg.Modules, cfg.Upstream, db)
		if err != nil {
			return nil, fmt.Errorf("failed to set up modules: %w", err)
		}
		a.stores[modules.Family] = family.Store
		specs = append(specs, family.Spec())
	}

	var invalidator cache.Invalidator = cache.Nop{}
	if cfg.Cache.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.pages = cache.NewStorageInvalidator(client, cfg.Storage.Bucket, cfg.Cache)
		invalidator = a.pages
	}

	a.orchestrator = reconcile.NewOrchestrator(invalidator, l, specs...)
	return a, nil
}

// families resolves a family argument; "all" selects every enabled family.
func (a *app) families(arg string) ([]string, error) {
	if arg == "all" {
		return a.orchestrator.Families(), nil
	}
	if _, ok := a.stores[arg]; !ok {
		return nil, fmt.Errorf("%w: %s", reconcile.ErrUnknownFamily, arg)
	}
	return []string{arg}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
