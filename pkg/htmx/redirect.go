package htmx

import "net/http"

// Redirect sends the client to url. htmx requests get an HX-Redirect header
// with 200 so the browser navigates instead of swapping the target page in.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
