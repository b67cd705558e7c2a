// Package mirror persists the locally known state of a remote catalog.
//
// Each catalog family owns one table of rows keyed by package name. A row holds the ordered
// version list last reconciled for that package, stored space separated.
//
// The Store interface is what the reconciliation engine depends on; GormStore implements it
// for MySQL and SQLite through GORM. Writes inside RunInTransaction share one database
// transaction so a reconciliation pass commits all of its row changes or none of them.
//
// # Usage
//
//	store := mirror.NewGormStore(db, "remote_gems")
//	if err := store.Migrate(ctx); err != nil {
//	    return err
//	}
//
//	err := store.RunInTransaction(ctx, func(tx mirror.Store) error {
//	    return tx.Set(ctx, "rails", []string{"7.1.0", "7.0.8"})
//	})
package mirror
