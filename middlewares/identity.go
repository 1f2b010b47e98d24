package middlewares

import (
	"github.com/dmitrymomot/sigcraft/internal"
	"github.com/dmitrymomot/sigcraft/pkg/access"
	"github.com/dmitrymomot/sigcraft/pkg/session"
)

// IdentitySessionKey is the session value holding the signed-in identity.
const IdentitySessionKey = "identity"

type identityKey struct{}

// Identity returns middleware that reads the signed-in identity from the
// session into the request context. Requests without one pass through
// untouched.
func Identity() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			sess, err := c.Session()
			if err != nil {
				c.LogWarn("failed to load session", "error", err)
				return next(c)
			}
			if sess == nil || !sess.IsAuthenticated() {
				return next(c)
			}

			id, err := session.Value[access.Identity](sess, IdentitySessionKey)
			if err != nil {
				c.LogWarn("session without identity", "error", err)
				return next(c)
			}
			c.Set(identityKey{}, &id)
			return next(c)
		}
	}
}

// RequireIdentity returns middleware that hands requests without an
// identity to deny. It expects Identity to run first.
func RequireIdentity(deny internal.HandlerFunc) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if GetIdentity(c) == nil {
				return deny(c)
			}
			return next(c)
		}
	}
}

// GetIdentity returns the signed-in identity, or nil.
func GetIdentity(c internal.Context) *access.Identity {
	return internal.ContextValue[*access.Identity](c, identityKey{})
}
