package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sigcraft/pkg/i18n"
)

// Translate looks up a UI label. It matches Context.T.
type Translate func(key string, placeholders ...i18n.M) string

// htmlWriter writes markup and keeps the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// component builds a templ.Component from a function writing through htmlWriter.
func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
