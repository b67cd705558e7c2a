// Package upstream provides the HTTP client the family fetchers use to talk to registries.
//
// Requests are plain GETs with a configured user agent, bounded by a per-request timeout and
// throttled by a token bucket so full catalog walks stay polite. Non-2xx answers surface as
// *StatusError. Requests are not retried; a failed fetch aborts the pass and the next
// scheduled pass tries again.
package upstream
