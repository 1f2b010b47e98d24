package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sigcraft/pkg/i18n"
)

// ErrorPage is the full-page error view.
func ErrorPage(t Translate, status int, message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="error-page"><h1>`)
		h.text(t("error.title", i18n.M{"status": status}))
		h.raw(`</h1><p>`)
		h.text(message)
		h.raw(`</p><a href="/">`)
		h.text(t("app.reload"))
		h.raw(`</a></section>`)
	})
}

// ErrorBanner is swapped into #errors on htmx requests.
func ErrorBanner(message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<p class="error" role="alert">`)
		h.text(message)
		h.raw(`</p>`)
	})
}
