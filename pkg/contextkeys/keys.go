// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application are defined here so that
// packages setting a value and packages reading it agree on the key.
//
// USAGE PATTERN:
//
//	import "github.com/platinummonkey/regstats/pkg/contextkeys"
//	ctx = context.WithValue(ctx, contextkeys.RequestIDKey, id)
//	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
package contextkeys

// Key is the type for context keys to prevent collisions
type Key string

const (
	// RequestIDKey contains request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware (pkg/httputil/middleware.go)
	// Used by: Logger, distributed tracing
	// Type: string
	RequestIDKey Key = "request_id"

	// LoggerKey contains *logrus.Logger
	// Set by: observability.WithLogger
	// Used by: Code that logs without a logger passed in explicitly
	// Type: *logrus.Logger
	LoggerKey Key = "logger"
)
