package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/sigcraft/internal"
)

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

// serve builds an app with the given middleware and a GET / handler.
func serve(t *testing.T, req *http.Request, mw []internal.Middleware, h internal.HandlerFunc, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts,
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/", h)
			r.POST("/", h)
		})),
	)
	w := httptest.NewRecorder()
	internal.New(opts...).Router().ServeHTTP(w, req)
	return w
}
