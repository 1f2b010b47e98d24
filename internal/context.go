package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/sigcraft/pkg/cookie"
	"github.com/dmitrymomot/sigcraft/pkg/htmx"
	"github.com/dmitrymomot/sigcraft/pkg/i18n"
	"github.com/dmitrymomot/sigcraft/pkg/session"
)

// TranslatorKey is the context key of the request's *i18n.Translator.
type TranslatorKey struct{}

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapped writer for hooks and status inspection.
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Query returns the query parameter value by name.
	Query(name string) string

	// Form returns the form value by name, parsing the body on first access.
	Form(name string) string

	// FormValues returns every value submitted for a repeated field.
	FormValues(name string) []string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to url. htmx requests get an HX-Redirect header instead.
	Redirect(code int, url string) error

	// Error creates an HTTPError without writing a response.
	// Return it from the handler to reach the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX reports whether the request came from htmx.
	IsHTMX() bool

	// Render renders a component with the given status code.
	// Render options only take effect for htmx requests.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for htmx requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Written reports whether a response has already been written.
	Written() bool

	// Logger returns the application logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context, or nil.
	Get(key any) any

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// SetCookie sets a plain cookie.
	SetCookie(name, value string, maxAge time.Duration)

	// DeleteCookie removes a cookie.
	DeleteCookie(name string)

	// CookieEncrypted decrypts a cookie into dest.
	// Returns cookie.ErrNoSecret if no secret is configured.
	CookieEncrypted(name string, dest any) error

	// SetCookieEncrypted stores value in an encrypted cookie.
	// Returns cookie.ErrNoSecret if no secret is configured.
	SetCookieEncrypted(name string, value any, maxAge time.Duration) error

	// PopCookie reads an encrypted cookie and deletes it.
	PopCookie(name string, dest any) error

	// Flash reads and deletes a flash message.
	Flash(key string, dest any) error

	// SetFlash sets a flash message for the next request.
	SetFlash(key string, value any) error

	// Session returns the current session, loading it on first use.
	// Returns nil, nil when the request has no live session.
	// Returns session.ErrNotConfigured if WithSession was not used.
	Session() (*session.Session, error)

	// InitSession creates a new session and sets its cookie.
	InitSession() error

	// AuthenticateSession binds userID to the session and rotates its token.
	// A session is created first if there is none.
	AuthenticateSession(userID string) error

	// SessionValue returns a value from the session, or nil if unset.
	// Returns session.ErrNotFound if there is no session.
	SessionValue(key string) (any, error)

	// SetSessionValue stores a value in the session.
	// Returns session.ErrNotFound if there is no session.
	SetSessionValue(key string, val any) error

	// DeleteSessionValue removes a value from the session.
	DeleteSessionValue(key string) error

	// DestroySession deletes the session and clears its cookie.
	DestroySession() error

	// UserID returns the user bound to the session, or "".
	UserID() string

	// IsAuthenticated reports whether a user is bound to the session.
	IsAuthenticated() bool

	// T translates key with the translator set by the language middleware.
	// Returns key if there is none.
	T(key string, placeholders ...i18n.M) string

	// Language returns the UI language, or "" without a translator.
	Language() string
}

// sessionState is shared by every Context built for the same request, so
// middleware and handler see one session and register one save hook.
type sessionState struct {
	session        *session.Session
	loaded         bool
	hookRegistered bool
}

type sessionStateKey struct{}

// requestContext implements the Context interface.
type requestContext struct {
	response       *ResponseWriter
	request        *http.Request
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	sessionManager *SessionManager
	state          *sessionState
}

// newContext builds the Context for one handler or middleware call.
// A writer that is already wrapped is reused.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}

	state, ok := r.Context().Value(sessionStateKey{}).(*sessionState)
	if !ok {
		state = &sessionState{}
		r = r.WithContext(context.WithValue(r.Context(), sessionStateKey{}, state))
	}

	return &requestContext{
		request:        r,
		response:       rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
		sessionManager: app.sessionManager,
		state:          state,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) FormValues(name string) []string {
	if c.request.Form == nil {
		// A malformed body leaves the query values parsed.
		_ = c.request.ParseForm()
	}
	return c.request.Form[name]
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	if c.IsHTMX() {
		htmx.Redirect(c.response, c.request, url)
		return nil
	}
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	var cfg *htmx.Config
	if len(opts) > 0 && c.IsHTMX() {
		cfg = htmx.NewConfig(opts...)
	}

	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	cfg.ApplyHeaders(c.response)
	c.response.WriteHeader(code)

	if err := component.Render(c.request.Context(), c.response); err != nil {
		return err
	}
	return cfg.RenderOOB(c.request.Context(), c.response)
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Get(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge time.Duration) {
	c.cookieManager.Set(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

func (c *requestContext) CookieEncrypted(name string, dest any) error {
	return c.cookieManager.GetEncrypted(c.request, name, dest)
}

func (c *requestContext) SetCookieEncrypted(name string, value any, maxAge time.Duration) error {
	return c.cookieManager.SetEncrypted(c.response, name, value, maxAge)
}

func (c *requestContext) PopCookie(name string, dest any) error {
	return c.cookieManager.Pop(c.response, c.request, name, dest)
}

func (c *requestContext) Flash(key string, dest any) error {
	return c.cookieManager.Flash(c.response, c.request, key, dest)
}

func (c *requestContext) SetFlash(key string, value any) error {
	return c.cookieManager.SetFlash(c.response, key, value)
}

// registerSessionHook saves a dirty session right before the response is
// written. It is registered once per request.
func (c *requestContext) registerSessionHook() {
	if c.state.hookRegistered {
		return
	}
	c.state.hookRegistered = true
	c.response.OnBeforeWrite(func() {
		sess := c.state.session
		if sess == nil || !sess.IsDirty() {
			return
		}
		// The response is already on its way; a failed save is logged only.
		if err := c.sessionManager.Store().Update(c.Context(), sess); err != nil {
			c.LogError("failed to save session", "error", err)
			return
		}
		sess.ClearDirty()
	})
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}
	c.registerSessionHook()

	if c.state.loaded {
		return c.state.session, nil
	}

	sess, err := c.sessionManager.LoadSession(c.Context(), c.request)
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
		// Stale cookie: drop it and carry on without a session.
		c.sessionManager.DeleteSession(c.response)
		sess, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.state.session = sess
	c.state.loaded = true
	return sess, nil
}

func (c *requestContext) InitSession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	c.registerSessionHook()

	sess, err := c.sessionManager.CreateSession(c.Context())
	if err != nil {
		return err
	}

	c.state.session = sess
	c.state.loaded = true
	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) AuthenticateSession(userID string) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		c.LogWarn("failed to load session", "error", err)
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return err
		}
		sess = c.state.session
	}

	sess.UserID = &userID
	sess.MarkDirty()
	if err := c.sessionManager.RotateToken(c.Context(), sess); err != nil {
		return err
	}
	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) SessionValue(key string) (any, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, session.ErrNotFound
	}
	val, _ := sess.GetValue(key)
	return val, nil
}

func (c *requestContext) SetSessionValue(key string, val any) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}
	sess.SetValue(key, val)
	return nil
}

func (c *requestContext) DeleteSessionValue(key string) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}
	sess.DeleteValue(key)
	return nil
}

func (c *requestContext) DestroySession() error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess != nil {
		if err := c.sessionManager.Store().Delete(c.Context(), sess.ID); err != nil {
			return err
		}
	}
	c.sessionManager.DeleteSession(c.response)

	// Keep loaded set so the hook does not resurrect it.
	c.state.session = nil
	c.state.loaded = true
	return nil
}

func (c *requestContext) UserID() string {
	sess, err := c.Session()
	if err != nil || sess == nil || sess.UserID == nil {
		return ""
	}
	return *sess.UserID
}

func (c *requestContext) IsAuthenticated() bool {
	return c.UserID() != ""
}

func (c *requestContext) translator() *i18n.Translator {
	tr, _ := c.Get(TranslatorKey{}).(*i18n.Translator)
	return tr
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if tr := c.translator(); tr != nil {
		return tr.Language()
	}
	return ""
}
