package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/internal"
)

func extract(t *testing.T, req *http.Request, e internal.Extractor) (string, bool) {
	t.Helper()
	var v string
	var ok bool
	requestVia(t, req, nil, func(c internal.Context) error {
		v, ok = e.Extract(c)
		return nil
	})
	return v, ok
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	t.Run("first non empty source wins", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?language=fr", nil)
		req.Header.Set("X-Language", "de")

		v, ok := extract(t, req, internal.NewExtractor(
			internal.FromHeader("X-Missing"),
			internal.FromQuery("language"),
			internal.FromHeader("X-Language"),
		))
		require.True(t, ok)
		require.Equal(t, "fr", v)
	})

	t.Run("form and cookie", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "de"})

		v, ok := extract(t, req, internal.NewExtractor(
			internal.FromForm("language"),
			internal.FromCookie("lang"),
		))
		require.True(t, ok)
		require.Equal(t, "de", v)
	})

	t.Run("all sources miss", func(t *testing.T) {
		t.Parallel()

		v, ok := extract(t, httptest.NewRequest(http.MethodGet, "/", nil), internal.NewExtractor(
			internal.FromHeader("X-Request-ID"),
			internal.FromCookie("none"),
		))
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("custom source returning empty is skipped", func(t *testing.T) {
		t.Parallel()

		empty := func(internal.Context) (string, bool) { return "", true }
		fixed := func(internal.Context) (string, bool) { return "x", true }

		v, ok := extract(t, httptest.NewRequest(http.MethodGet, "/", nil), internal.NewExtractor(empty, fixed))
		require.True(t, ok)
		require.Equal(t, "x", v)
	})
}
