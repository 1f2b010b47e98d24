package middlewares

import (
	"github.com/dmitrymomot/sigcraft/internal"
	"github.com/dmitrymomot/sigcraft/pkg/i18n"
)

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	Extractor    internal.Extractor
	extractorSet bool
}

// LanguageOption configures LanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithLanguageExtractor replaces the default extractor chain.
func WithLanguageExtractor(ext internal.Extractor) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromAcceptLanguage returns a source that matches the Accept-Language
// header against the catalog languages.
func FromAcceptLanguage(svc *i18n.I18n) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return svc.Match(header), true
	}
}

// FromSupported wraps src and drops values the catalog has no labels for.
func FromSupported(svc *i18n.I18n, src internal.ExtractorSource) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		v, ok := src(c)
		if !ok || !svc.Has(v) {
			return "", false
		}
		return v, true
	}
}

// Language returns middleware that picks the UI language and stores a
// translator for it in the request context.
//
// By default the UI follows the signature language selected in the editor
// form, then the Accept-Language header, then the catalog default.
func Language(svc *i18n.I18n, opts ...LanguageOption) internal.Middleware {
	cfg := &LanguageConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			FromSupported(svc, internal.FromForm("language")),
			FromAcceptLanguage(svc),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok {
				lang = svc.DefaultLanguage()
			}
			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(svc, lang))
			return next(c)
		}
	}
}

// GetTranslator returns the request translator, or nil if the Language
// middleware is not used.
func GetTranslator(c internal.Context) *i18n.Translator {
	return internal.ContextValue[*i18n.Translator](c, internal.TranslatorKey{})
}
