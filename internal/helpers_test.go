package internal_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/internal"
)

func TestTypedQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?n=3&on=true&f=1.5&bad=x", nil)

	var n int
	var on bool
	var f float64
	var bad, missing int64
	var fallback int
	requestVia(t, req, nil, func(c internal.Context) error {
		n = internal.Query[int](c, "n")
		on = internal.Query[bool](c, "on")
		f = internal.Query[float64](c, "f")
		bad = internal.Query[int64](c, "bad")
		missing = internal.QueryDefault[int64](c, "missing", 7)
		fallback = internal.QueryDefault(c, "bad", 9)
		return nil
	})

	require.Equal(t, 3, n)
	require.True(t, on)
	require.InDelta(t, 1.5, f, 0.0001)
	require.Zero(t, bad)
	require.Equal(t, int64(7), missing)
	require.Equal(t, 9, fallback)
}

func TestTypedForm(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"maxPositions": {"2"},
		"position":     {"1", "x", "0", "1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var maxPositions int
	var positions []int
	var names []string
	requestVia(t, req, nil, func(c internal.Context) error {
		maxPositions = internal.Form[int](c, "maxPositions")
		positions = internal.FormValues[int](c, "position")
		names = internal.FormValues[string](c, "name")
		return nil
	})

	require.Equal(t, 2, maxPositions)
	require.Equal(t, []int{1, 0, 1}, positions)
	require.Empty(t, names)
}

func TestContextValueWrongType(t *testing.T) {
	t.Parallel()

	type key struct{}
	var got int
	requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
		c.Set(key{}, "not an int")
		got = internal.ContextValue[int](c, key{})
		return nil
	})
	require.Zero(t, got)
}
