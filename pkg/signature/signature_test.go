package signature_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/signature"
)

func ptr[T any](v T) *T { return &v }

func TestLocalize(t *testing.T) {
	t.Parallel()

	all := orgconfig.Position{"en": {Neutral: ptr("N"), Male: ptr("M"), Female: ptr("F")}}
	gendered := orgconfig.Position{"en": {Male: ptr("M"), Female: ptr("F")}}
	femaleOnly := orgconfig.Position{"en": {Female: ptr("F")}}

	tests := []struct {
		name string
		pos  orgconfig.Position
		lang string
		pref signature.Gender
		want string
	}{
		{name: "neutral wins over female", pos: all, lang: "en", pref: signature.GenderFemale, want: "N"},
		{name: "neutral wins over male", pos: all, lang: "en", pref: signature.GenderMale, want: "N"},
		{name: "preferred female", pos: gendered, lang: "en", pref: signature.GenderFemale, want: "F"},
		{name: "preferred male", pos: gendered, lang: "en", pref: signature.GenderMale, want: "M"},
		{name: "neutral preference falls back to male", pos: gendered, lang: "en", pref: signature.GenderNeutral, want: "M"},
		{name: "male preference falls back to female", pos: femaleOnly, lang: "en", pref: signature.GenderMale, want: "F"},
		{name: "unknown language", pos: all, lang: "de", pref: signature.GenderNeutral, want: ""},
		{name: "no variants", pos: orgconfig.Position{"en": {}}, lang: "en", pref: signature.GenderNeutral, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, signature.Localize(tt.pos, tt.lang, tt.pref))
		})
	}
}

func TestParseGender(t *testing.T) {
	t.Parallel()

	require.Equal(t, signature.GenderFemale, signature.ParseGender("female"))
	require.Equal(t, signature.GenderMale, signature.ParseGender("male"))
	require.Equal(t, signature.GenderNeutral, signature.ParseGender("neutral"))
	require.Equal(t, signature.GenderNeutral, signature.ParseGender(""))
	require.Equal(t, signature.GenderNeutral, signature.ParseGender("Female"))
}

func TestFill(t *testing.T) {
	t.Parallel()

	positions := []orgconfig.Position{
		{"en": {Neutral: ptr("Engineer")}},
		{"en": {Neutral: ptr("Manager")}},
		{"en": {Female: ptr("Director"), Male: ptr("Director")}},
	}

	tests := []struct {
		name   string
		tpl    string
		values signature.Values
		want   string
	}{
		{
			name: "absent field is removed",
			tpl:  "Call me: {{phone}}!",
			want: "Call me: !",
		},
		{
			name:   "scalars",
			tpl:    "{{name}} ({{pronouns}})\n{{email}} | {{phone}}\n{{address}}",
			values: signature.Values{Name: ptr("Jane"), Pronouns: ptr("she/her"), Email: ptr("j@acme.com"), Phone: ptr("+1"), Address: ptr("1 Main St")},
			want:   "Jane (she/her)\nj@acme.com | +1\n1 Main St",
		},
		{
			name:   "scalar fills first occurrence only",
			tpl:    "{{name}} / {{name}}",
			values: signature.Values{Name: ptr("Jane")},
			want:   "Jane / ",
		},
		{
			name:   "position slots capped by max",
			tpl:    "{{position}},{{position}},{{position}}",
			values: signature.Values{Positions: []int{0, 1}, MaxPositions: 2},
			want:   "Engineer,Manager,",
		},
		{
			name:   "position slots capped by selection",
			tpl:    "{{position}}|{{position}}|{{position}}",
			values: signature.Values{Positions: []int{1}, MaxPositions: 3},
			want:   "Manager||",
		},
		{
			name:   "unlimited positions",
			tpl:    "{{position}} {{position}} {{position}}",
			values: signature.Values{Positions: []int{0, 1, 2}},
			want:   "Engineer Manager Director",
		},
		{
			name:   "max below selection",
			tpl:    "{{position}} {{position}}",
			values: signature.Values{Positions: []int{2, 0}, MaxPositions: 1},
			want:   "Director ",
		},
		{
			name:   "all positions joined by newline",
			tpl:    "{{all_positions}}\n--\n{{all_positions}}",
			values: signature.Values{Positions: []int{1, 0, 1}},
			want:   "Manager\nEngineer\nManager\n--\n",
		},
		{
			name:   "out of range index",
			tpl:    "[{{position}}][{{position}}]",
			values: signature.Values{Positions: []int{7, 0}},
			want:   "[][Engineer]",
		},
		{
			name:   "no positions entered",
			tpl:    "{{all_positions}}{{position}}",
			values: signature.Values{MaxPositions: 2},
			want:   "",
		},
		{
			name:   "unknown tokens are kept",
			tpl:    "{{title}} {{{name}}} {{",
			values: signature.Values{Name: ptr("Jane")},
			want:   "{{title}} {Jane} {{",
		},
		{
			name:   "values are not rescanned",
			tpl:    "{{name}} {{email}}",
			values: signature.Values{Name: ptr("{{email}}"), Email: ptr("j@acme.com")},
			want:   "{{email}} j@acme.com",
		},
		{
			name: "no tokens",
			tpl:  "Kind regards",
			want: "Kind regards",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, signature.Fill(tt.tpl, tt.values, "en", positions, signature.GenderNeutral))
		})
	}
}

func TestFillWithGender(t *testing.T) {
	t.Parallel()

	positions := []orgconfig.Position{{"de": {Female: ptr("Leiterin"), Male: ptr("Leiter")}}}
	v := signature.Values{Positions: []int{0}}

	require.Equal(t, "Leiterin", signature.Fill("{{position}}", v, "de", positions, signature.GenderFemale))
	require.Equal(t, "Leiter", signature.Fill("{{position}}", v, "de", positions, signature.GenderNeutral))
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	t.Run("escapes values", func(t *testing.T) {
		t.Parallel()

		out := signature.RenderHTML("<p><b>{{name}}</b></p>", signature.Values{Name: ptr(`<script>alert(1)</script>`)}, "en", nil, signature.GenderNeutral)
		require.NotContains(t, out, "<script>")
		require.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("sanitizes template", func(t *testing.T) {
		t.Parallel()

		out := signature.RenderHTML(`<p onclick="x()">{{name}}</p><script>evil()</script>`, signature.Values{Name: ptr("Jane")}, "en", nil, signature.GenderNeutral)
		require.Equal(t, "<p>Jane</p>", out)
	})

	t.Run("text is not escaped", func(t *testing.T) {
		t.Parallel()

		out := signature.Render(orgconfig.KindTXT, "{{name}}", signature.Values{Name: ptr("Jane & Co <x>")}, "en", nil, signature.GenderNeutral)
		require.Equal(t, "Jane & Co <x>", out)
	})
}
