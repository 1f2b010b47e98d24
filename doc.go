// Package sigcraft is a small web framework for the e-mail signature
// generator: an App over chi, a request Context with server-side sessions
// and htmx-aware rendering, and graceful shutdown.
//
// The signature logic itself lives in pkg: orgconfig loads and normalizes
// the organization configuration, access filters it per caller, signature
// fills templates and pronouns generates pronoun lists. The handlers
// package puts them behind HTTP.
//
// # Quick Start
//
//	app := sigcraft.New(
//	    sigcraft.WithLogger(log),
//	    sigcraft.WithCookieManager(cookies),
//	    sigcraft.WithSession(session.NewMemoryStore()),
//	    sigcraft.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Identity(),
//	    ),
//	    sigcraft.WithErrorHandler(handlers.ErrorHandler),
//	    sigcraft.WithHandlers(
//	        handlers.NewAuth(provider),
//	        handlers.NewAPI(configs),
//	        handlers.NewEditor(configs),
//	    ),
//	)
//
//	if err := app.Run(":8080", sigcraft.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] and receive their dependencies through
// constructors:
//
//	func (h *API) Routes(r sigcraft.Router) {
//	    r.GET("/api/config", h.config, middlewares.RequireIdentity(forbidden))
//	}
//
// Returning an error hands the request to the [ErrorHandler].
package sigcraft
