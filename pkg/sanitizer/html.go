package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy    *bluemonday.Policy
	signaturePolicy *bluemonday.Policy
	initOnce        sync.Once
)

// Colors, lengths and font names only. No url(), expression() or quotes.
var safeStyleValue = regexp.MustCompile(`^[\w\s#%.,()+-]*$`)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// E-mail clients render table layouts with inline styles, so the
		// signature policy keeps both but drops anything scriptable.
		signaturePolicy = bluemonday.NewPolicy()
		signaturePolicy.AllowStandardURLs()
		signaturePolicy.AllowURLSchemes("http", "https", "mailto", "tel")
		signaturePolicy.AllowElements(
			"p", "br", "hr", "div", "span",
			"strong", "b", "em", "i", "u", "small", "font",
			"table", "thead", "tbody", "tr", "td", "th",
		)
		signaturePolicy.AllowAttrs("href", "title", "target").OnElements("a")
		signaturePolicy.AllowImages()
		signaturePolicy.AllowAttrs("width", "height", "border", "alt").OnElements("img")
		signaturePolicy.AllowAttrs("cellpadding", "cellspacing", "border", "width").OnElements("table")
		signaturePolicy.AllowAttrs("width", "valign", "align", "colspan", "rowspan").OnElements("td", "th")
		signaturePolicy.AllowAttrs("color", "face", "size").OnElements("font")
		signaturePolicy.AllowAttrs("align").OnElements("p", "div")
		signaturePolicy.AllowStyles(
			"color", "background-color",
			"font-family", "font-size", "font-weight", "font-style", "line-height",
			"text-decoration", "text-align", "vertical-align",
			"margin", "margin-top", "margin-bottom", "margin-left", "margin-right",
			"padding", "padding-top", "padding-bottom", "padding-left", "padding-right",
			"border", "border-collapse", "border-top", "border-bottom", "border-left", "border-right",
			"width", "height", "max-width", "display", "white-space",
		).Matching(safeStyleValue).Globally()
		signaturePolicy.RequireNoReferrerOnLinks(true)
		signaturePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// StripHTML removes all markup and returns the text content.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeSignature keeps the markup e-mail signatures are built from
// (tables, inline styles, images, links) and removes scripts, event
// handlers and unsafe URLs.
func SanitizeSignature(s string) string {
	initPolicies()
	return signaturePolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
