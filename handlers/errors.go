package handlers

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/sigcraft"
	"github.com/dmitrymomot/sigcraft/middlewares"
	"github.com/dmitrymomot/sigcraft/pkg/htmx"
	"github.com/dmitrymomot/sigcraft/views"
)

// ErrorHandler renders handler errors. API routes get JSON, htmx requests
// an error banner in #errors, everything else a full error page.
func ErrorHandler(c sigcraft.Context, err error) error {
	code := http.StatusInternalServerError
	message := ""
	if httpErr := sigcraft.AsHTTPError(err); httpErr != nil {
		code = httpErr.StatusCode()
		message = httpErr.Message
	}

	switch code {
	case http.StatusNotFound:
		message = c.T("error.not_found")
	case http.StatusForbidden:
		message = c.T("error.forbidden")
	case http.StatusInternalServerError:
		message = c.T("error.internal")
	}

	requestID := middlewares.GetRequestID(c)
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "error", err, "status", code)
	} else {
		c.LogDebug("request rejected", "error", err, "status", code)
	}

	switch {
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		body := map[string]string{"error": message}
		if requestID != "" {
			body["request_id"] = requestID
		}
		return c.JSON(code, body)
	case c.IsHTMX():
		return c.Render(code, views.ErrorBanner(message),
			htmx.WithRetarget("#errors"),
			htmx.WithReswap(htmx.SwapInnerHTML),
		)
	default:
		return c.Render(code, views.Page(c.T, c.Language(), views.ErrorPage(c.T, code, message)))
	}
}

// NotFound answers unknown routes through ErrorHandler.
func NotFound(_ sigcraft.Context) error {
	return sigcraft.ErrNotFound("")
}
