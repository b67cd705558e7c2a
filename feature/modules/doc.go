// Package modules implements the modules catalog family on top of a Forge v3 API.
//
// A full pass walks /v3/modules sorted by latest release and collects every module's
// releases. An incremental pass streams /v3/releases sorted by release date, newest first,
// so the reconciler can stop at the first release the mirror already knows. Pages are
// fetched lazily; the stream never reads past the page holding that release.
//
// Stored version lists are ordered newest first by semantic version.
package modules
