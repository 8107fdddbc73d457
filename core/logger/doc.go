// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the local tracker API.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry, so
// every log line emitted while serving one request can be correlated. WithGame scopes a
// logger to the game (and recording side) a wizard or sync operation is working on.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithGame(log, gameID, "one")
//	l.Error("Push failed", zap.Error(err))
package logger
