package gems

import (
	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"
	"catalog-mirror/core/upstream"

	"gorm.io/gorm"
)

// Bundle binds the gems adapter with its mirror table.
type Bundle struct {
	Adapter *Adapter
	Store   *mirror.GormStore
}

// NewFamily wires the gems family against db.
func NewFamily(cfg Config, upstreamCfg upstream.Config, db *gorm.DB) (*Bundle, error) {
	client, err := upstream.NewClient(cfg.BaseURL, upstreamCfg)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Adapter: NewAdapter(client),
		Store:   mirror.NewGormStore(db, cfg.Table),
	}, nil
}

// Spec returns the orchestrator binding of the family.
func (b *Bundle) Spec() *reconcile.Spec {
	return &reconcile.Spec{Adapter: b.Adapter, Store: b.Store}
}
