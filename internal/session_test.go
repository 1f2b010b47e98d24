package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/internal"
	"github.com/dmitrymomot/sigcraft/pkg/session"
)

const sessionCookie = "__sid"

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	// The last Set-Cookie wins, as in a browser.
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			found = c
		}
	}
	return found
}

func newStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionNotConfigured(t *testing.T) {
	t.Parallel()

	var sessErr, initErr error
	var authenticated bool
	requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
		_, sessErr = c.Session()
		initErr = c.InitSession()
		authenticated = c.IsAuthenticated()
		return nil
	})

	require.ErrorIs(t, sessErr, session.ErrNotConfigured)
	require.ErrorIs(t, initErr, session.ErrNotConfigured)
	require.False(t, authenticated)
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("no cookie means no session", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		var sess *session.Session
		var err error
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil),
			[]internal.Option{internal.WithSession(store)},
			func(c internal.Context) error {
				sess, err = c.Session()
				return nil
			})

		require.NoError(t, err)
		require.Nil(t, sess)
		require.Zero(t, store.Len())
	})

	t.Run("authenticate creates session and sets cookie", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		opts := []internal.Option{internal.WithSession(store)}

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) error {
			if err := c.AuthenticateSession("ada@example.com"); err != nil {
				return err
			}
			if err := c.SetSessionValue("theme", "dark"); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		})
		require.Equal(t, http.StatusNoContent, w.Code)

		cookie := sessionCookieFrom(t, w)
		require.NotNil(t, cookie)
		require.NotEmpty(t, cookie.Value)
		require.True(t, cookie.HttpOnly)

		stored, err := store.Get(context.Background(), cookie.Value)
		require.NoError(t, err)
		require.True(t, stored.IsAuthenticated())
		require.Equal(t, "ada@example.com", *stored.UserID)

		theme, err := session.Value[string](stored, "theme")
		require.NoError(t, err)
		require.Equal(t, "dark", theme)

		// A second request with the cookie sees the same user.
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		var userID string
		requestVia(t, req, opts, func(c internal.Context) error {
			userID = c.UserID()
			return nil
		})
		require.Equal(t, "ada@example.com", userID)
	})

	t.Run("authenticate rotates a pre existing token", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		opts := []internal.Option{internal.WithSession(store)}

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) error {
			return c.InitSession()
		})
		anonymous := sessionCookieFrom(t, w)
		require.NotNil(t, anonymous)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(anonymous)
		w = requestVia(t, req, opts, func(c internal.Context) error {
			return c.AuthenticateSession("u1")
		})
		rotated := sessionCookieFrom(t, w)
		require.NotNil(t, rotated)
		require.NotEqual(t, anonymous.Value, rotated.Value)

		_, err := store.Get(context.Background(), anonymous.Value)
		require.ErrorIs(t, err, session.ErrNotFound)
		require.Equal(t, 1, store.Len())
	})

	t.Run("stale cookie is cleared", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "gone"})

		var sess *session.Session
		var err error
		w := requestVia(t, req, []internal.Option{internal.WithSession(newStore(t))}, func(c internal.Context) error {
			sess, err = c.Session()
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, err)
		require.Nil(t, sess)
		cleared := sessionCookieFrom(t, w)
		require.NotNil(t, cleared)
		require.Negative(t, cleared.MaxAge)
	})

	t.Run("session values need a session", func(t *testing.T) {
		t.Parallel()

		var setErr error
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil),
			[]internal.Option{internal.WithSession(newStore(t))},
			func(c internal.Context) error {
				setErr = c.SetSessionValue("k", "v")
				return nil
			})
		require.ErrorIs(t, setErr, session.ErrNotFound)
	})

	t.Run("destroy removes session and cookie", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		opts := []internal.Option{internal.WithSession(store)}

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) error {
			return c.AuthenticateSession("u1")
		})
		cookie := sessionCookieFrom(t, w)
		require.NotNil(t, cookie)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(cookie)
		var after bool
		w = requestVia(t, req, opts, func(c internal.Context) error {
			if err := c.DestroySession(); err != nil {
				return err
			}
			after = c.IsAuthenticated()
			return c.NoContent(http.StatusOK)
		})

		require.False(t, after)
		require.Zero(t, store.Len())
		cleared := sessionCookieFrom(t, w)
		require.NotNil(t, cleared)
		require.Negative(t, cleared.MaxAge)
	})

	t.Run("custom cookie name and max age", func(t *testing.T) {
		t.Parallel()

		opts := []internal.Option{internal.WithSession(newStore(t),
			internal.WithSessionCookieName("sig"),
			internal.WithSessionMaxAge(time.Hour),
		)}
		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) error {
			return c.InitSession()
		})

		var found *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == "sig" {
				found = c
			}
		}
		require.NotNil(t, found)
		require.Equal(t, 3600, found.MaxAge)
	})
}

type failingStore struct {
	session.Store
}

func (failingStore) Get(context.Context, string) (*session.Session, error) {
	return nil, errors.New("store down")
}

func TestSessionStoreFailure(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "token"})

	var err error
	requestVia(t, req, []internal.Option{internal.WithSession(failingStore{})}, func(c internal.Context) error {
		_, err = c.Session()
		return nil
	})
	require.EqualError(t, err, "store down")
}
