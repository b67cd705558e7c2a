// Package cache derives and invalidates the cache keys of mirrored packages.
//
// When a reconciliation pass changes or removes a package, three keys go stale: the family
// index root ("/gems"), the first-letter shard ("/gems/~r") and the package itself
// ("/gems/rails"). Keys computes that set; an Invalidator drops it.
//
// StorageInvalidator removes pre-rendered pages kept as objects in the storage bucket.
// Nop is used when no cache backend is configured.
package cache
