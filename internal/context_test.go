package internal_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/internal"
	"github.com/dmitrymomot/sigcraft/pkg/htmx"
	"github.com/dmitrymomot/sigcraft/pkg/i18n"
)

// requestVia creates an App with the given options, registers a handler at
// "/" for GET and POST, runs fn inside it and sends req.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithHandlers(&captureHandler{fn: fn}))
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)
	return w
}

type captureHandler struct {
	fn func(c internal.Context) error
}

func (h *captureHandler) Routes(r internal.Router) {
	r.GET("/", h.fn)
	r.POST("/", h.fn)
}

type textComponent string

func (t textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

func htmxRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("HX-Request", "true")
	return req
}

func TestContextDelegatesToRequestContext(t *testing.T) {
	t.Parallel()

	t.Run("deadline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		expected, _ := ctx.Deadline()

		var got time.Time
		var ok bool
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) error {
			got, ok = c.Deadline()
			return nil
		})

		require.True(t, ok)
		require.Equal(t, expected, got)
	})

	t.Run("value", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))

		var got any
		requestVia(t, req, nil, func(c internal.Context) error {
			got = c.Value(key{})
			return nil
		})
		require.Equal(t, "v", got)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		var got string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) error {
			c.Set(key{}, "stored")
			got = internal.ContextValue[string](c, key{})
			return nil
		})
		require.Equal(t, "stored", got)
	})
}

func TestContextRequestAccessors(t *testing.T) {
	t.Parallel()

	t.Run("query and header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
		req.Header.Set("X-Test", "yes")

		var lang, header string
		requestVia(t, req, nil, func(c internal.Context) error {
			lang = c.Query("lang")
			header = c.Header("X-Test")
			return nil
		})
		require.Equal(t, "de", lang)
		require.Equal(t, "yes", header)
	})

	t.Run("form values keep order and duplicates", func(t *testing.T) {
		t.Parallel()

		form := url.Values{"position": {"2", "0", "2"}, "name": {"Ada"}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var positions []string
		var name string
		requestVia(t, req, nil, func(c internal.Context) error {
			positions = c.FormValues("position")
			name = c.Form("name")
			return nil
		})
		require.Equal(t, []string{"2", "0", "2"}, positions)
		require.Equal(t, "Ada", name)
	})

	t.Run("form falls back to query", func(t *testing.T) {
		t.Parallel()

		var got []string
		req := httptest.NewRequest(http.MethodGet, "/?position=1&position=3", nil)
		requestVia(t, req, nil, func(c internal.Context) error {
			got = c.FormValues("position")
			return nil
		})
		require.Equal(t, []string{"1", "3"}, got)
	})
}

func TestContextResponses(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.JSON(http.StatusCreated, map[string]string{"ok": "yes"})
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		require.JSONEq(t, `{"ok":"yes"}`, w.Body.String())
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.String(http.StatusOK, "hello")
		})

		require.Equal(t, "hello", w.Body.String())
		require.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.NoContent(http.StatusForbidden)
		})

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Empty(t, w.Body.String())
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.Redirect(http.StatusFound, "/auth/login")
		})

		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/auth/login", w.Header().Get("Location"))
	})

	t.Run("redirect htmx", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, htmxRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.Redirect(http.StatusFound, "/auth/login")
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "/auth/login", w.Header().Get("HX-Redirect"))
		require.Empty(t, w.Header().Get("Location"))
	})
}

func TestContextRender(t *testing.T) {
	t.Parallel()

	t.Run("full page ignores htmx options", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.Render(http.StatusOK, textComponent("<main>"),
				htmx.WithTrigger("rendered"),
				htmx.WithOOB(textComponent("<oob>")),
			)
		})

		require.Equal(t, "<main>", w.Body.String())
		require.Empty(t, w.Header().Get("HX-Trigger"))
		require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("htmx applies headers and out of band fragments", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, htmxRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.Render(http.StatusOK, textComponent("<main>"),
				htmx.WithTrigger("rendered"),
				htmx.WithOOB(textComponent("<oob>")),
			)
		})

		require.Equal(t, "<main><oob>", w.Body.String())
		require.Equal(t, "rendered", w.Header().Get("HX-Trigger"))
	})

	t.Run("partial picks fragment for htmx", func(t *testing.T) {
		t.Parallel()

		full := textComponent("full")
		part := textComponent("part")

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.RenderPartial(http.StatusOK, full, part)
		})
		require.Equal(t, "full", w.Body.String())

		w = requestVia(t, htmxRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.RenderPartial(http.StatusOK, full, part)
		})
		require.Equal(t, "part", w.Body.String())
	})

	t.Run("htmx error status is rewritten to 200", func(t *testing.T) {
		t.Parallel()

		var status int
		w := requestVia(t, htmxRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			err := c.Render(http.StatusUnprocessableEntity, textComponent("bad"))
			status = c.ResponseWriter().Status()
			return err
		})

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, http.StatusUnprocessableEntity, status)
	})
}

func TestContextTranslation(t *testing.T) {
	t.Parallel()

	t.Run("without translator", func(t *testing.T) {
		t.Parallel()

		var text, lang string
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			text = c.T("editor.title")
			lang = c.Language()
			return nil
		})
		require.Equal(t, "editor.title", text)
		require.Empty(t, lang)
	})

	t.Run("with translator", func(t *testing.T) {
		t.Parallel()

		svc, err := i18n.New(
			i18n.WithDefaultLanguage("en"),
			i18n.WithTranslations("de", map[string]any{"editor": map[string]any{"title": "Signatur"}}),
		)
		require.NoError(t, err)

		var text, lang string
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(svc, "de"))
			text = c.T("editor.title")
			lang = c.Language()
			return nil
		})
		require.Equal(t, "Signatur", text)
		require.Equal(t, "de", lang)
	})
}
