package internal

import (
	"log/slog"

	"github.com/dmitrymomot/sigcraft/pkg/cookie"
	"github.com/dmitrymomot/sigcraft/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
//
// Example:
//
//	sigcraft.WithErrorHandler(func(c sigcraft.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints.
// Liveness (/health/live) always answers OK while the process runs.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	sigcraft.WithHealthChecks(
//	    sigcraft.WithReadinessCheck("config", loader.Ready),
//	    sigcraft.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieManager sets the cookie manager shared by the request context
// and the session manager.
//
// Example:
//
//	cookies, err := cookie.New(cfg.Cookie)
//	if err != nil {
//	    return err
//	}
//	sigcraft.New(sigcraft.WithCookieManager(cookies))
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.cookieManager = m
		}
	}
}

// WithSession enables server-side sessions backed by store.
// Sessions are loaded lazily and saved before the response is written.
//
// Example:
//
//	sigcraft.New(
//	    sigcraft.WithSession(session.NewMemoryStore(),
//	        sigcraft.WithSessionCookieName("__sid"),
//	        sigcraft.WithSessionMaxAge(8*time.Hour),
//	    ),
//	)
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}
