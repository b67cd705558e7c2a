// Package config provides configuration management for the catalog mirror.
//
// Values come from environment variables, optionally loaded from a .env file, with
// defaults taken from the `default` struct tags of every section.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: mirror database driver and connection details
//   - Storage, Cache: object storage holding rendered pages and how keys map to objects
//   - Upstream: user agent, timeout and request rate for registry clients
//   - Gems, Modules: per-family registry URL, mirror table and toggles
//   - Scheduler: full and incremental pass intervals
//   - Log: logging level and format
//
// Nested keys map to upper-case variables joined by underscores, e.g. MODULES_MAX_PAGES.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
