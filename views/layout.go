package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sigcraft/pkg/i18n"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Page wraps body in the HTML document shell.
func Page(t Translate, lang string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(t("app.title"))
		h.raw(`</title><script`)
		h.attr("src", htmxScript)
		h.raw(`></script><style>`)
		h.raw(pageStyle)
		h.raw(`</style></head><body><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
	})
}

// Header shows the signed-in user and the logout button.
func Header(t Translate, userName string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<header><h1>`)
		h.text(t("app.title"))
		h.raw(`</h1><form method="post" action="/auth/logout"><span>`)
		h.text(t("auth.signed_in_as", i18n.M{"name": userName}))
		h.raw(`</span> <button type="submit">`)
		h.text(t("auth.sign_out"))
		h.raw(`</button></form></header>`)
	})
}

// SignIn is the landing page for anonymous visitors. message is an
// already translated error, if any.
func SignIn(t Translate, message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="sign-in"><h1>`)
		h.text(t("app.title"))
		h.raw(`</h1>`)
		if message != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(message)
			h.raw(`</p>`)
		}
		h.raw(`<p>`)
		h.text(t("auth.prompt"))
		h.raw(`</p><a class="button" href="/auth/login">`)
		h.text(t("auth.sign_in"))
		h.raw(`</a></section>`)
	})
}

// Notice renders a single message, for example when no organization is visible.
func Notice(message string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<p class="notice">`)
		h.text(message)
		h.raw(`</p>`)
	})
}

// Stack renders components one after another.
func Stack(parts ...templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		for _, p := range parts {
			h.component(ctx, p)
		}
	})
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:0;background:#f6f6f6}
main{max-width:960px;margin:0 auto;padding:1rem}
header{display:flex;justify-content:space-between;align-items:center}
form.editor{display:grid;gap:.75rem;background:#fff;padding:1rem;border-radius:6px}
label{display:grid;gap:.25rem}
.error{color:#b00020}
#preview{background:#fff;margin-top:1rem;padding:1rem;border-radius:6px}
textarea{width:100%;min-height:8rem;font-family:monospace}`
