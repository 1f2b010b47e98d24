// Package logger builds the server's slog logger.
//
// Records are written as JSON to stdout by default. A [ContextExtractor]
// pulls request-scoped values such as the request ID out of the context on
// every call, so handlers only need to log with the request context:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "signature rendered", slog.String("org", orgID))
//
// Setting SENTRY_DSN additionally forwards warnings and errors to Sentry.
// Without a DSN the logger stays stdout-only, which keeps local runs quiet.
package logger
