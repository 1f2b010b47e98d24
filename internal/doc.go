// Package internal holds the HTTP layer of sigcraft: the App, the router
// adapter over chi, the request Context and its session handling.
//
// Import "github.com/dmitrymomot/sigcraft" instead, which re-exports the
// public API.
//
// # Context
//
// Context embeds context.Context, so it can be passed to any function that
// expects one:
//
//	func (h *Editor) preview(c sigcraft.Context) error {
//	    cc, err := h.configs.For(c, middlewares.GetIdentity(c))
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
//
// Sessions are loaded lazily on the first Session call and cached for the
// rest of the request, so middleware and handler share a single load. A dirty
// session is written back to the store right before the response headers go
// out.
//
// # Handlers
//
// Handlers implement Handler and declare their routes:
//
//	func (h *Auth) Routes(r sigcraft.Router) {
//	    r.Route("/auth", func(r sigcraft.Router) {
//	        r.GET("/login", h.login)
//	        r.GET("/callback", h.callback)
//	        r.POST("/logout", h.logout)
//	    })
//	}
//
// Errors returned from handlers reach the ErrorHandler configured with
// WithErrorHandler. Without one, a plain 500 is written.
//
// # Server Runtime
//
// Run serves until SIGINT or SIGTERM, then shuts down gracefully and runs the
// shutdown hooks in registration order:
//
//	err := app.Run(":8080",
//	    sigcraft.Logger(log),
//	    sigcraft.ShutdownHook(redis.Shutdown(client)),
//	)
package internal
