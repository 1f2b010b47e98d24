package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the header before parsing.
const maxAcceptLanguageLength = 4096

// Match picks the catalog language that best fits an Accept-Language
// header. It returns the default language when nothing matches.
func (i *I18n) Match(header string) string {
	return matchTags(i.matcher, header, i.languages)
}

// ParseAcceptLanguage picks the entry of available that best fits the
// header, or the first entry when nothing matches.
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	tags := make([]language.Tag, 0, len(available))
	for _, l := range available {
		tags = append(tags, language.Make(l))
	}
	return matchTags(language.NewMatcher(tags), header, available)
}

func matchTags(m language.Matcher, header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return available[0]
	}
	_, idx, conf := m.Match(desired...)
	if conf == language.No {
		return available[0]
	}
	return available[idx]
}
