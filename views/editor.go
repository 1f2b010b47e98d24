package views

import (
	"context"

	"github.com/a-h/templ"
)

// Option is one entry of a select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is a text input gated by the organization's field visibility.
type Field struct {
	Show  bool
	Value string
}

// PositionSlot is one position select. Value -1 is the empty slot used to
// add another position.
type PositionSlot struct {
	Value int
}

// EditorModel is everything the editor form shows.
type EditorModel struct {
	T Translate

	// Selects are shown only when they offer a choice.
	Languages     []Option
	Organizations []Option
	Pronouns      []Option
	Genders       []Option

	// Organization is the selected organization id, echoed so the server
	// notices when it changes.
	Organization string

	Name    Field
	Email   Field
	Phone   Field
	Address Field

	ShowPositions bool
	PositionNames []string
	Slots         []PositionSlot

	// ShowKindToggle offers plaintext when both kinds exist.
	ShowKindToggle bool
	Plaintext      bool

	Preview PreviewModel
}

// Editor renders the form and the preview inside #editor. Structural
// inputs reload the whole editor; every other input only refreshes the
// preview.
func Editor(m EditorModel) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		t := m.T
		h.raw(`<div id="editor"><div id="errors"></div>`)
		h.raw(`<form class="editor" hx-post="/preview" hx-trigger="input[!target.matches('[hx-get]')] delay:300ms, change[!target.matches('[hx-get]')]" hx-target="#preview" hx-swap="outerHTML" hx-sync="this:replace">`)
		h.raw(`<input type="hidden" name="prev_org"`)
		h.attr("value", m.Organization)
		h.raw(`>`)

		if len(m.Languages) > 1 {
			structuralSelect(h, t("form.language"), "language", m.Languages)
		} else if len(m.Languages) == 1 {
			hidden(h, "language", m.Languages[0].Value)
		}
		if len(m.Organizations) > 1 {
			structuralSelect(h, t("form.organization"), "org", m.Organizations)
		} else if len(m.Organizations) == 1 {
			hidden(h, "org", m.Organizations[0].Value)
		}
		if len(m.Pronouns) > 0 {
			plainSelect(h, t("form.pronouns"), "pronouns", m.Pronouns)
		}
		if len(m.Genders) > 0 {
			plainSelect(h, t("form.gender"), "gender", m.Genders)
		}

		textInput(h, t("form.name"), "name", "text", m.Name)
		textInput(h, t("form.email"), "email", "email", m.Email)
		textInput(h, t("form.phone"), "phone", "tel", m.Phone)
		textInput(h, t("form.address"), "address", "text", m.Address)

		if m.ShowPositions {
			h.raw(`<fieldset><legend>`)
			h.text(t("form.positions"))
			h.raw(`</legend>`)
			for _, slot := range m.Slots {
				positionSelect(h, t("form.no_position"), m.PositionNames, slot.Value)
			}
			h.raw(`</fieldset>`)
		}

		if m.ShowKindToggle {
			h.raw(`<label class="inline"><input type="checkbox" name="plaintext" value="true"`)
			h.flag("checked", m.Plaintext)
			h.raw(`> `)
			h.text(t("form.plaintext"))
			h.raw(`</label>`)
		}

		h.raw(`<a href="/">`)
		h.text(t("form.reset"))
		h.raw(`</a></form>`)
		h.component(ctx, Preview(m.Preview))
		h.component(ctx, Source(m.Preview))
		h.raw(`</div>`)
	})
}

func hidden(h *htmlWriter, name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`>`)
}

// structuralSelect reloads the editor when it changes.
func structuralSelect(h *htmlWriter, label, name string, opts []Option) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<select`)
	h.attr("name", name)
	h.raw(` hx-get="/" hx-target="#editor" hx-swap="outerHTML" hx-include="closest form" hx-sync="closest form:replace">`)
	options(h, opts)
	h.raw(`</select></label>`)
}

func plainSelect(h *htmlWriter, label, name string, opts []Option) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<select`)
	h.attr("name", name)
	h.raw(`>`)
	options(h, opts)
	h.raw(`</select></label>`)
}

func options(h *htmlWriter, opts []Option) {
	for _, o := range opts {
		h.raw(`<option`)
		h.attr("value", o.Value)
		h.flag("selected", o.Selected)
		h.raw(`>`)
		h.text(o.Label)
		h.raw(`</option>`)
	}
}

func textInput(h *htmlWriter, label, name, typ string, f Field) {
	if !f.Show {
		return
	}
	h.raw(`<label>`)
	h.text(label)
	h.raw(`<input`)
	h.attr("type", typ)
	h.attr("name", name)
	h.attr("value", f.Value)
	h.raw(`></label>`)
}

// positionSelect renders one slot. Choosing the empty entry removes the
// slot on the next editor reload.
func positionSelect(h *htmlWriter, empty string, names []string, selected int) {
	h.raw(`<select name="position" hx-get="/" hx-target="#editor" hx-swap="outerHTML" hx-include="closest form" hx-sync="closest form:replace"><option value=""`)
	h.flag("selected", selected < 0)
	h.raw(`>`)
	h.text(empty)
	h.raw(`</option>`)
	for i, name := range names {
		h.raw(`<option`)
		h.attr("value", itoa(i))
		h.flag("selected", i == selected)
		h.raw(`>`)
		h.text(name)
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}
