package signature

import "github.com/dmitrymomot/sigcraft/pkg/orgconfig"

// Gender is a grammatical gender preference.
type Gender string

const (
	GenderNeutral Gender = "neutral"
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
)

// ParseGender returns the gender named by s, or GenderNeutral for anything else.
func ParseGender(s string) Gender {
	switch g := Gender(s); g {
	case GenderFemale, GenderMale:
		return g
	default:
		return GenderNeutral
	}
}

// Localize returns the display text of a position in lang.
// The neutral form always wins, then the preferred form, then male, then
// female. Returns "" if the language has no form at all.
func Localize(pos orgconfig.Position, lang string, pref Gender) string {
	v, ok := pos[lang]
	if !ok {
		return ""
	}
	if v.Neutral != nil {
		return *v.Neutral
	}
	switch pref {
	case GenderFemale:
		if v.Female != nil {
			return *v.Female
		}
	case GenderMale:
		if v.Male != nil {
			return *v.Male
		}
	}
	if v.Male != nil {
		return *v.Male
	}
	if v.Female != nil {
		return *v.Female
	}
	return ""
}

// ResolvePositions localizes the selected position indices in order.
// Indices outside positions resolve to "".
func ResolvePositions(positions []orgconfig.Position, selected []int, lang string, pref Gender) []string {
	out := make([]string, len(selected))
	for i, idx := range selected {
		if idx >= 0 && idx < len(positions) {
			out[i] = Localize(positions[idx], lang, pref)
		}
	}
	return out
}
