package internal

// Handler declares routes on a router.
//
// Example:
//
//	type ConfigHandler struct {
//	    loader *orgconfig.Loader
//	}
//
//	func (h *ConfigHandler) Routes(r sigcraft.Router) {
//	    r.GET("/api/config", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands the request to the ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func SignedIn(next sigcraft.HandlerFunc) sigcraft.HandlerFunc {
//	    return func(c sigcraft.Context) error {
//	        if !c.IsAuthenticated() {
//	            return c.Redirect(http.StatusFound, "/auth/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
