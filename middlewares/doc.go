// Package middlewares provides the HTTP middleware used by sigcraft.
//
// # Request ID
//
// RequestID keeps an upstream X-Request-ID or generates a UUID. Pair it with
// RequestIDExtractor so every log line carries the ID:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover turns panics into *PanicError values for the error handler.
//
// # Identity
//
// Identity copies the signed-in access.Identity from the session into the
// request context. RequireIdentity rejects requests without one:
//
//	r.Group(func(r sigcraft.Router) {
//	    r.Use(middlewares.RequireIdentity(func(c sigcraft.Context) error {
//	        return c.NoContent(http.StatusForbidden)
//	    }))
//	    r.GET("/api/config", h.config)
//	})
//
// # Language
//
// Language picks the UI language from the editor's language field, then
// Accept-Language, and stores a translator for Context.T.
//
// # Recommended Order
//
//	sigcraft.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	    middlewares.Identity(),
//	    middlewares.Language(catalog),
//	)
package middlewares
