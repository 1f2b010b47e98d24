package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders substitutes {{name}} markers. Unknown markers are
// left untouched.
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 {
		return template
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
