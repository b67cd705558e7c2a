// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: a unique request id per request, stored in the fiber locals under "ray_id"
//     and echoed in the X-Ray-ID response header.
package middleware
