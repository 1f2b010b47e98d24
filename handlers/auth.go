package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sigcraft"
	"github.com/dmitrymomot/sigcraft/middlewares"
	"github.com/dmitrymomot/sigcraft/pkg/access"
	"github.com/dmitrymomot/sigcraft/pkg/oauth"
)

const (
	stateCookie    = "__oauth"
	flashAuthError = "auth_error"
)

var (
	ErrStateMismatch = errors.New("oauth state mismatch")
	ErrNonceMismatch = errors.New("oauth nonce mismatch")
)

// authState travels through the identity provider in an encrypted cookie.
type authState struct {
	State string `json:"s"`
	Nonce string `json:"n"`
}

// Auth runs the OpenID Connect sign-in.
type Auth struct {
	provider oauth.Provider
	stateTTL time.Duration
}

// AuthOption configures the Auth handler.
type AuthOption func(*Auth)

// WithStateTTL bounds how long a sign-in may take. Defaults to 10 minutes.
func WithStateTTL(d time.Duration) AuthOption {
	return func(a *Auth) {
		if d > 0 {
			a.stateTTL = d
		}
	}
}

// NewAuth creates the sign-in handler.
func NewAuth(provider oauth.Provider, opts ...AuthOption) *Auth {
	a := &Auth{provider: provider, stateTTL: 10 * time.Minute}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Routes implements sigcraft.Handler.
func (h *Auth) Routes(r sigcraft.Router) {
	r.Route("/auth", func(r sigcraft.Router) {
		r.GET("/login", h.login)
		r.GET("/callback", h.callback)
		r.POST("/logout", h.logout)
	})
}

func (h *Auth) login(c sigcraft.Context) error {
	st := authState{State: uuid.NewString(), Nonce: uuid.NewString()}
	if err := c.SetCookieEncrypted(stateCookie, st, h.stateTTL); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.provider.AuthCodeURL(st.State, oauth.Nonce(st.Nonce)))
}

func (h *Auth) callback(c sigcraft.Context) error {
	var st authState
	if err := c.PopCookie(stateCookie, &st); err != nil {
		return h.fail(c, "missing sign-in state", err)
	}
	if reason := c.Query("error"); reason != "" {
		return h.fail(c, "provider rejected sign-in", errors.New(reason+": "+c.Query("error_description")))
	}
	if state := c.Query("state"); state == "" || state != st.State {
		return h.fail(c, "state mismatch", ErrStateMismatch)
	}

	token, err := h.provider.Exchange(c, c.Query("code"))
	if err != nil {
		return h.fail(c, "code exchange failed", err)
	}
	info, err := h.provider.FetchUserInfo(c, token)
	if err != nil {
		return h.fail(c, "invalid id token", err)
	}
	if info.Nonce != st.Nonce {
		return h.fail(c, "nonce mismatch", ErrNonceMismatch)
	}

	if err := c.AuthenticateSession(info.Email); err != nil {
		return err
	}
	id := access.Identity{Email: info.Email, Name: info.Name, Roles: info.Roles}
	if err := c.SetSessionValue(middlewares.IdentitySessionKey, id); err != nil {
		return err
	}
	c.LogInfo("user signed in", "provider", h.provider.Name(), "email", info.Email, "roles", len(info.Roles))
	return c.Redirect(http.StatusFound, "/")
}

func (h *Auth) logout(c sigcraft.Context) error {
	if err := c.DestroySession(); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// fail sends the browser back to the sign-in page with a message.
func (h *Auth) fail(c sigcraft.Context, reason string, err error) error {
	c.LogWarn("sign-in failed", "reason", reason, "error", err)
	if ferr := c.SetFlash(flashAuthError, "auth.failed"); ferr != nil {
		c.LogError("failed to set flash", "error", ferr)
	}
	return c.Redirect(http.StatusFound, "/")
}
