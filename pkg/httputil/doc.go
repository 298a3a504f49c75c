// Package httputil provides HTTP utilities for standardized response handling.
//
// # Response Helpers
//
//	httputil.WriteJSON(w, http.StatusOK, payload)
//	httputil.WriteInternalError(w)
//	httputil.WriteTemporarilyDisabled(w)
//
// WriteTemporarilyDisabled answers 502 with a plain text body and is what
// handlers return while a killswitch is engaged.
//
// # Middleware
//
// Middleware share the func(http.Handler) http.Handler shape and compose with
// Chain, outermost first:
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)(router)
//
// RequestIDMiddleware stores the request ID in the context with
// observability.WithRequestID, so log lines written through
// observability.FromContext carry it.
package httputil
