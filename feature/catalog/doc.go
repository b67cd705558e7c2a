// Package catalog exposes the mirror over HTTP.
//
// # HTTP Endpoints
//
//   - GET /catalog : Lists the mirrored families and whether they sync incrementally.
//   - POST /catalog/:family/sync : Runs a pass (?mode=full, the default, or ?mode=incremental).
//   - POST /catalog/:family/register : Merges one release ({"name", "version", "platform"}).
//   - GET /catalog/:family/:name : Returns the mirrored versions of a package.
//
// Errors are returned as {"error": "..."}: 404 for an unknown family or package, 409 when a
// family cannot sync incrementally, 400 for bad input and 500 for failed passes.
package catalog
