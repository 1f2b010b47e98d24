package signature

import (
	"html"
	"strings"

	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/sanitizer"
)

// Placeholder tokens.
const (
	TokenName         = "{{name}}"
	TokenAllPositions = "{{all_positions}}"
	TokenPosition     = "{{position}}"
	TokenEmail        = "{{email}}"
	TokenAddress      = "{{address}}"
	TokenPronouns     = "{{pronouns}}"
	TokenPhone        = "{{phone}}"
)

var tokens = []string{
	TokenName, TokenAllPositions, TokenPosition,
	TokenEmail, TokenAddress, TokenPronouns, TokenPhone,
}

// Values are the user-entered fields of a signature. Nil fields are absent.
type Values struct {
	Name     *string
	Address  *string
	Email    *string
	Phone    *string
	Pronouns *string
	// Positions are indices into the organization's positions, in display order.
	// Duplicates are allowed. Nil means no positions were entered.
	Positions []int
	// MaxPositions caps the filled {{position}} slots. Zero means unlimited.
	MaxPositions int
}

// Option configures Fill.
type Option func(*filler)

// WithEscaper escapes every inserted value. Template text is left alone.
func WithEscaper(escape func(string) string) Option {
	return func(f *filler) {
		f.escape = escape
	}
}

type filler struct {
	escape func(string) string
}

// Fill substitutes values into tpl in a single pass.
func Fill(tpl string, v Values, lang string, positions []orgconfig.Position, pref Gender, opts ...Option) string {
	f := filler{escape: func(s string) string { return s }}
	for _, opt := range opts {
		opt(&f)
	}

	scalars := map[string]*string{
		TokenName:     v.Name,
		TokenEmail:    v.Email,
		TokenAddress:  v.Address,
		TokenPronouns: v.Pronouns,
		TokenPhone:    v.Phone,
	}

	var resolved []string
	slots := 0
	if v.Positions != nil {
		resolved = ResolvePositions(positions, v.Positions, lang, pref)
		for i := range resolved {
			resolved[i] = f.escape(resolved[i])
		}
		slots = len(resolved)
		if v.MaxPositions > 0 && v.MaxPositions < slots {
			slots = v.MaxPositions
		}
	}

	used := make(map[string]bool, len(tokens))
	nextSlot := 0

	var b strings.Builder
	b.Grow(len(tpl))
	rest := tpl
	for {
		i := strings.Index(rest, "{{")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		tok := matchToken(rest)
		if tok == "" {
			b.WriteByte('{')
			rest = rest[1:]
			continue
		}
		rest = rest[len(tok):]

		switch tok {
		case TokenPosition:
			if nextSlot < slots {
				b.WriteString(resolved[nextSlot])
				nextSlot++
			}
		case TokenAllPositions:
			if !used[tok] && v.Positions != nil {
				b.WriteString(strings.Join(resolved, "\n"))
			}
		default:
			if val := scalars[tok]; !used[tok] && val != nil {
				b.WriteString(f.escape(*val))
			}
		}
		used[tok] = true
	}
	return b.String()
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

// RenderText fills a plain text template.
func RenderText(tpl string, v Values, lang string, positions []orgconfig.Position, pref Gender) string {
	return Fill(tpl, v, lang, positions, pref)
}

// RenderHTML fills an HTML template with escaped values and sanitizes the result.
func RenderHTML(tpl string, v Values, lang string, positions []orgconfig.Position, pref Gender) string {
	out := Fill(tpl, v, lang, positions, pref, WithEscaper(html.EscapeString))
	return sanitizer.SanitizeSignature(out)
}

// Render dispatches on the template kind.
func Render(kind orgconfig.Kind, tpl string, v Values, lang string, positions []orgconfig.Position, pref Gender) string {
	if kind == orgconfig.KindHTML {
		return RenderHTML(tpl, v, lang, positions, pref)
	}
	return RenderText(tpl, v, lang, positions, pref)
}
