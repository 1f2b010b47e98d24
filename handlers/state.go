package handlers

import (
	"net/url"
	"slices"

	"github.com/dmitrymomot/sigcraft/pkg/access"
	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/signature"
)

// editorInput is the submitted editor form. An absent field takes its
// default; a field submitted empty stays empty.
type editorInput struct {
	values    url.Values
	positions []int
}

func (in editorInput) get(name string) (string, bool) {
	v, ok := in.values[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// editorState is the resolved state of one editor render.
type editorState struct {
	Config   *access.ClientConfig
	Language string
	Org      *access.ClientOrg

	// PronounChoices is nil when the pronoun input is hidden.
	PronounChoices []string
	Pronoun        string
	Gender         signature.Gender

	Name    string
	Email   string
	Phone   string
	Address string

	Positions []int
	Kind      orgconfig.Kind
}

// resolveState applies the submitted values over the defaults. cc must
// list at least one organization.
func resolveState(cc *access.ClientConfig, id *access.Identity, in editorInput) editorState {
	st := editorState{Config: cc, Gender: signature.GenderNeutral}

	if lang, _ := in.get("language"); cc.Languages.Has(lang) {
		st.Language = lang
	} else if len(cc.Languages) > 0 {
		st.Language = cc.Languages[0].Code
	}

	orgID, _ := in.get("org")
	org, ok := cc.Organizations.Get(orgID)
	if !ok {
		org = cc.Organizations[0]
	}
	st.Org = org

	prevOrg, submitted := in.get("prev_org")
	orgChanged := submitted && prevOrg != org.ID

	st.Name = valueOr(in, "name", identityName(id))
	st.Email = valueOr(in, "email", identityEmail(id))
	st.Phone, _ = in.get("phone")
	st.Address = org.Address
	if addr, ok := in.get("address"); ok && !orgChanged {
		st.Address = addr
	}

	if cc.Pronouns != nil && org.TemplateFields.Pronouns {
		choices, _ := cc.Pronouns.Get(st.Language)
		st.PronounChoices = choices
		p, ok := in.get("pronouns")
		switch {
		case ok && (p == "" || slices.Contains(choices, p)):
			st.Pronoun = p
		case len(choices) > 0:
			st.Pronoun = choices[0]
		}
	}

	if org.GenderRequired {
		g, _ := in.get("gender")
		st.Gender = signature.ParseGender(g)
	}

	if !orgChanged {
		for _, idx := range in.positions {
			if idx < 0 || idx >= len(org.Positions) {
				continue
			}
			if org.MaxPositions > 0 && len(st.Positions) >= org.MaxPositions {
				break
			}
			st.Positions = append(st.Positions, idx)
		}
	}

	hasHTML := org.HasKind(st.Language, orgconfig.KindHTML)
	hasTXT := org.HasKind(st.Language, orgconfig.KindTXT)
	plaintext, _ := in.get("plaintext")
	st.Kind = orgconfig.KindHTML
	if hasTXT && (plaintext == "true" || !hasHTML) {
		st.Kind = orgconfig.KindTXT
	}

	return st
}

// values returns the fields the organization shows. Hidden fields are absent.
func (st editorState) values() signature.Values {
	f := st.Org.TemplateFields
	v := signature.Values{MaxPositions: st.Org.MaxPositions}
	if f.Name {
		v.Name = &st.Name
	}
	if f.Email {
		v.Email = &st.Email
	}
	if f.Phone {
		v.Phone = &st.Phone
	}
	if f.Address {
		v.Address = &st.Address
	}
	if st.PronounChoices != nil && st.Pronoun != "" {
		v.Pronouns = &st.Pronoun
	}
	if f.Positions && len(st.Positions) > 0 {
		v.Positions = st.Positions
	}
	return v
}

// render fills the selected template. A missing template yields "".
func (st editorState) render() string {
	tpl, ok := st.Org.Templates[st.Language].Get(st.Kind)
	if !ok {
		return ""
	}
	return signature.Render(st.Kind, tpl, st.values(), st.Language, st.Org.Positions, st.Gender)
}

func valueOr(in editorInput, name, def string) string {
	if v, ok := in.get(name); ok {
		return v
	}
	return def
}

func identityName(id *access.Identity) string {
	if id == nil {
		return ""
	}
	return id.Name
}

func identityEmail(id *access.Identity) string {
	if id == nil {
		return ""
	}
	return id.Email
}
