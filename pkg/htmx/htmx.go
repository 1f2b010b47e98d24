package htmx

import "net/http"

// Request headers.
const (
	HeaderHXRequest = "HX-Request"
	HeaderHXTarget  = "HX-Target"
)

// Response headers.
const (
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRefresh  = "HX-Refresh"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// SwapStrategy is an hx-swap value.
type SwapStrategy string

const (
	SwapInnerHTML SwapStrategy = "innerHTML"
	SwapOuterHTML SwapStrategy = "outerHTML"
	SwapNone      SwapStrategy = "none"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Target returns the id of the element htmx will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}
