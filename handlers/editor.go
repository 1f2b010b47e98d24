package handlers

import (
	"net/http"

	"github.com/dmitrymomot/sigcraft"
	"github.com/dmitrymomot/sigcraft/middlewares"
	"github.com/dmitrymomot/sigcraft/pkg/access"
	"github.com/dmitrymomot/sigcraft/pkg/htmx"
	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/signature"
	"github.com/dmitrymomot/sigcraft/views"
)

// SignatureRendered is the htmx event fired after every preview update.
const SignatureRendered = "signature-rendered"

// Editor serves the signature editor and its live preview.
type Editor struct {
	configs *Configs
}

// NewEditor creates the editor handler.
func NewEditor(configs *Configs) *Editor {
	return &Editor{configs: configs}
}

// Routes implements sigcraft.Handler.
func (h *Editor) Routes(r sigcraft.Router) {
	r.GET("/", h.show)
	r.POST("/preview", h.preview, middlewares.RequireIdentity(forbidden))
}

// show renders the editor page. htmx requests from structural inputs get
// only the editor fragment back.
func (h *Editor) show(c sigcraft.Context) error {
	id := middlewares.GetIdentity(c)
	if id == nil {
		if c.IsHTMX() {
			return c.Redirect(http.StatusFound, "/")
		}
		var key, message string
		if err := c.Flash(flashAuthError, &key); err == nil && key != "" {
			message = c.T(key)
		}
		return c.Render(http.StatusOK, views.Page(c.T, c.Language(), views.SignIn(c.T, message)))
	}

	cc, err := h.configs.For(c, id)
	if err != nil {
		return err
	}
	header := views.Header(c.T, displayName(id))
	if len(cc.Organizations) == 0 {
		return c.Render(http.StatusOK, views.Page(c.T, c.Language(),
			views.Stack(header, views.Notice(c.T("auth.no_organizations")))))
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}
	model := editorModel(c.T, resolveState(cc, id, in))
	editor := views.Editor(model)
	return c.RenderPartial(http.StatusOK,
		views.Page(c.T, c.Language(), views.Stack(header, editor)),
		editor,
	)
}

// preview re-renders the signature for the submitted form.
func (h *Editor) preview(c sigcraft.Context) error {
	id := middlewares.GetIdentity(c)
	cc, err := h.configs.For(c, id)
	if err != nil {
		return err
	}
	if len(cc.Organizations) == 0 {
		return sigcraft.ErrForbidden("")
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}
	pm := previewModel(c.T, resolveState(cc, id, in))
	return c.Render(http.StatusOK, views.Preview(pm),
		htmx.WithOOB(views.SourceOOB(pm)),
		htmx.WithTrigger(SignatureRendered),
	)
}

func readInput(c sigcraft.Context) (editorInput, error) {
	r := c.Request()
	if err := r.ParseForm(); err != nil {
		return editorInput{}, sigcraft.ErrBadRequest("invalid form", sigcraft.WithHTTPErrorCause(err))
	}
	return editorInput{
		values:    r.Form,
		positions: sigcraft.FormValues[int](c, "position"),
	}, nil
}

func displayName(id *access.Identity) string {
	if id.Name != "" {
		return id.Name
	}
	return id.Email
}

func previewModel(t views.Translate, st editorState) views.PreviewModel {
	return views.PreviewModel{
		T:      t,
		Output: st.render(),
		HTML:   st.Kind == orgconfig.KindHTML,
	}
}

func editorModel(t views.Translate, st editorState) views.EditorModel {
	org := st.Org
	fields := org.TemplateFields
	m := views.EditorModel{
		T:              t,
		Organization:   org.ID,
		Name:           views.Field{Show: fields.Name, Value: st.Name},
		Email:          views.Field{Show: fields.Email, Value: st.Email},
		Phone:          views.Field{Show: fields.Phone, Value: st.Phone},
		Address:        views.Field{Show: fields.Address, Value: st.Address},
		ShowPositions:  fields.Positions && len(org.Positions) > 0,
		ShowKindToggle: org.HasKind(st.Language, orgconfig.KindHTML) && org.HasKind(st.Language, orgconfig.KindTXT),
		Plaintext:      st.Kind == orgconfig.KindTXT,
		Preview:        previewModel(t, st),
	}

	for _, lang := range st.Config.Languages {
		m.Languages = append(m.Languages, views.Option{
			Value: lang.Code, Label: lang.Name, Selected: lang.Code == st.Language,
		})
	}
	for _, o := range st.Config.Organizations {
		m.Organizations = append(m.Organizations, views.Option{
			Value: o.ID, Label: o.Name, Selected: o.ID == org.ID,
		})
	}

	if st.PronounChoices != nil {
		m.Pronouns = append(m.Pronouns, views.Option{
			Value: "", Label: t("form.no_pronouns"), Selected: st.Pronoun == "",
		})
		for _, p := range st.PronounChoices {
			m.Pronouns = append(m.Pronouns, views.Option{Value: p, Label: p, Selected: p == st.Pronoun})
		}
	}

	if org.GenderRequired {
		for _, g := range []struct {
			gender signature.Gender
			key    string
		}{
			{signature.GenderNeutral, "form.gender_neutral"},
			{signature.GenderFemale, "form.gender_female"},
			{signature.GenderMale, "form.gender_male"},
		} {
			m.Genders = append(m.Genders, views.Option{
				Value: string(g.gender), Label: t(g.key), Selected: g.gender == st.Gender,
			})
		}
	}

	if m.ShowPositions {
		m.PositionNames = make([]string, len(org.Positions))
		for i, pos := range org.Positions {
			m.PositionNames[i] = signature.Localize(pos, st.Language, st.Gender)
		}
		for _, idx := range st.Positions {
			m.Slots = append(m.Slots, views.PositionSlot{Value: idx})
		}
		if org.MaxPositions == 0 || len(st.Positions) < org.MaxPositions {
			m.Slots = append(m.Slots, views.PositionSlot{Value: -1})
		}
	}

	return m
}
