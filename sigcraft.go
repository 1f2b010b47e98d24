package sigcraft

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sigcraft/internal"
	"github.com/dmitrymomot/sigcraft/pkg/cookie"
	"github.com/dmitrymomot/sigcraft/pkg/health"
	"github.com/dmitrymomot/sigcraft/pkg/session"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// SessionOption configures the session manager.
	SessionOption = internal.SessionOption

	// Session represents a user session.
	Session = session.Session

	// SessionStore defines the interface for session persistence.
	SessionStore = session.Store

	// ResponseWriter wraps http.ResponseWriter with hooks and htmx support.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error carrying an HTTP status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor tries value sources in order.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from the request.
	ExtractorSource = internal.ExtractorSource
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := sigcraft.New(
//	    sigcraft.WithLogger(log),
//	    sigcraft.WithSession(session.NewMemoryStore()),
//	    sigcraft.WithHandlers(
//	        handlers.NewAuth(provider),
//	        handlers.NewEditor(loader, pronouns.Default),
//	    ),
//	)
//
//	err := app.Run(":8080", sigcraft.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler sets the handler for errors returned from handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
// Example:
//
//	sigcraft.WithHealthChecks(
//	    sigcraft.WithReadinessCheck("config", loader.Ready),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCookieManager sets the cookie manager used for plain, encrypted and
// session cookies.
func WithCookieManager(m *cookie.Manager) Option {
	return internal.WithCookieManager(m)
}

// WithSession enables server-side sessions backed by store.
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// Session options

// WithSessionCookieName sets the session cookie name. Defaults to "__sid".
func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

// WithSessionMaxAge sets the session lifetime. Defaults to 8 hours.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return internal.WithSessionMaxAge(d)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function run after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError. An empty message defaults to the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithHTTPErrorCause attaches the underlying error to an HTTPError.
func WithHTTPErrorCause(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithHTTPErrorRequestID attaches the request ID to an HTTPError.
func WithHTTPErrorRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// Helpers

// ContextValue returns the request context value stored under key.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Query returns a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter, or defaultValue.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// Form returns a typed form value.
func Form[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Form[T](c, name)
}

// FormValues returns every parseable value of a repeated form field.
func FormValues[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) []T {
	return internal.FormValues[T](c, name)
}
