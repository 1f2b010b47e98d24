// Package i18n provides the label catalog of the signature editor.
//
// Labels live in one YAML file per language and are looked up by dotted
// key. A missing key falls back to the base language ("de" for "de-AT"),
// then to the default language, then to the key itself:
//
//	cat, err := i18n.New(i18n.WithYAMLDir(locales.FS))
//	tr := i18n.NewTranslator(cat, cat.Match(r.Header.Get("Accept-Language")))
//	tr.T("form.name") // "Name"
package i18n
