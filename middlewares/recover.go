package middlewares

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/dmitrymomot/sigcraft/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// PanicError is a panic recovered while serving a request.
type PanicError struct {
	Value any
	// Route is the method and path of the request, e.g. "POST /preview".
	Route string
	// Stack is nil when stack capture is disabled.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Route, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsPanicError reports whether err carries a *PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// AsPanicError returns the *PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize    int
	DisableStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisableStack skips stack capture.
func WithRecoverDisableStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisableStack = true
	}
}

// Recover returns middleware that turns a panic into a *PanicError for the
// app's error handler.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				pe := &PanicError{Value: r, Route: c.Request().Method + " " + c.Request().URL.Path}
				attrs := []any{"panic", r, "route", pe.Route}
				if !cfg.DisableStack {
					stack := make([]byte, cfg.StackSize)
					pe.Stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, "stack", string(pe.Stack))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
