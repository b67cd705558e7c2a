// Package gems implements the gems catalog family.
//
// The catalog is read from the registry's compact index (GET /versions), a single text file
// listing every gem with its published builds. Builds are identified by version and platform;
// the pure-Ruby platform "ruby" is canonical and stored as the bare version, other platforms
// as "version,platform".
//
// Gems only support full reconciliation: the compact index has no release stream.
package gems
