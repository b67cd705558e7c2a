// Package database handles mirror database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite (local runs
// and tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured dialect, tunes the connection pool and pings the database.
// SQLite connections are restricted to a single pooled connection, which keeps in-memory
// databases alive for the lifetime of the handle and serializes writers.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the mirror verify that its per-family tables carry
// the columns the reconciliation engine relies on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "remote_gems", "name", "versions")
package database
