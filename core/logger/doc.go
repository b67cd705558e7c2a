// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the operational API.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry, so all
// logs related to one request can be correlated. ForFamily scopes a logger to a catalog
// family, which is how every sync pass reports its progress.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Scheduler started")
//
//	l := logger.ForFamily(log, "gems")
//	l.Info("Full sync finished", zap.Int("changed", 3))
package logger
