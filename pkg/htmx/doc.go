// Package htmx holds the request detection, redirect and render-option
// helpers used by the signature editor.
//
// The editor posts the form with htmx; the server answers with the HTML
// preview and appends the plaintext preview as an out-of-band fragment:
//
//	c.Render(http.StatusOK, views.PreviewHTML(html),
//		htmx.WithOOB(views.PreviewText(txt)),
//		htmx.WithTrigger("signature-rendered"),
//	)
package htmx
