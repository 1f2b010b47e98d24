package views

import (
	"context"

	"github.com/a-h/templ"
)

// PreviewModel is a filled signature.
type PreviewModel struct {
	T Translate
	// Output is sanitized HTML when HTML is set, plain text otherwise.
	Output string
	HTML   bool
}

// Preview shows the rendered signature inside #preview.
func Preview(m PreviewModel) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="preview">`)
		if m.HTML {
			h.raw(`<div class="signature">`)
			// Output went through the signature sanitizer.
			h.raw(m.Output)
			h.raw(`</div>`)
		} else {
			h.raw(`<pre class="signature">`)
			h.text(m.Output)
			h.raw(`</pre>`)
		}
		h.raw(`</section>`)
	})
}

// Source is the copyable markup of the signature. It sits outside
// #preview, so preview responses update it out of band.
func Source(m PreviewModel) templ.Component {
	return sourceBox(m, false)
}

// SourceOOB is Source marked for an out-of-band swap.
func SourceOOB(m PreviewModel) templ.Component {
	return sourceBox(m, true)
}

func sourceBox(m PreviewModel, oob bool) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div id="source"`)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`><textarea id="source-text" readonly>`)
		h.text(m.Output)
		h.raw(`</textarea><button type="button" onclick="navigator.clipboard.writeText(document.getElementById('source-text').value);this.textContent=this.dataset.copied"`)
		h.attr("data-copied", m.T("preview.copied"))
		h.raw(`>`)
		h.text(m.T("preview.copy"))
		h.raw(`</button></div>`)
	})
}
