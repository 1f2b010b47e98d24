package i18n

// Translator binds a catalog to one language.
type Translator struct {
	i18n     *I18n
	language string
}

// NewTranslator falls back to the default language when language is empty.
func NewTranslator(i18n *I18n, language string) *Translator {
	if i18n == nil {
		panic("i18n: catalog is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{i18n: i18n, language: language}
}

func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, key, placeholders...)
}

func (t *Translator) Language() string {
	return t.language
}
