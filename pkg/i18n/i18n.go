package i18n

import (
	"fmt"
	"maps"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// M carries placeholder values for a translation.
type M map[string]any

// I18n is an immutable label catalog. It is safe for concurrent use.
type I18n struct {
	// key format: "lang:key.path"
	translations map[string]string
	defaultLang  string
	languages    []string
	matcher      language.Matcher
}

type Option func(*I18n) error

// New builds a catalog. The default language is always listed first,
// followed by the other loaded languages in load order.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("i18n: apply option: %w", err)
		}
	}
	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	langs := []string{i.defaultLang}
	for _, l := range i.languages {
		if l != i.defaultLang {
			langs = append(langs, l)
		}
	}
	i.languages = langs

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithTranslations adds a nested map of labels for lang. Nested keys are
// joined with dots.
func WithTranslations(lang string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.add(lang, translations)
		return nil
	}
}

func (i *I18n) add(lang string, translations map[string]any) {
	for key, value := range flatten(translations, "") {
		i.translations[lang+":"+key] = value
	}
	for _, l := range i.languages {
		if l == lang {
			return
		}
	}
	i.languages = append(i.languages, lang)
}

// T looks up key in lang, then in lang's base language, then in the
// default language. A missing key is returned as is.
func (i *I18n) T(lang, key string, placeholders ...M) string {
	for _, l := range i.chain(lang) {
		if s, ok := i.translations[l+":"+key]; ok {
			return replaceWithMerge(s, placeholders...)
		}
	}
	return key
}

// Has reports whether lang, or its base language, has its own catalog.
func (i *I18n) Has(lang string) bool {
	for _, l := range i.languages {
		if strings.EqualFold(l, lang) || strings.EqualFold(l, baseLanguage(lang)) {
			return true
		}
	}
	return false
}

func (i *I18n) chain(lang string) []string {
	chain := []string{lang}
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if lang != i.defaultLang && baseLanguage(lang) != i.defaultLang {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

func (i *I18n) Languages() []string {
	return i.languages
}

func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func flatten(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			result[full] = v
		case map[string]any:
			maps.Copy(result, flatten(v, full))
		default:
			result[full] = fmt.Sprintf("%v", v)
		}
	}
	return result
}

func replaceWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region: "de-AT" becomes "de".
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
