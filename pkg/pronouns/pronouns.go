package pronouns

import (
	"fmt"

	"github.com/dmitrymomot/sigcraft/pkg/orderedjson"
)

// Scheme describes how pronouns are written in one language.
type Scheme struct {
	Subject []string
	Object  []string
	Parts   int
}

// Table maps language codes to their pronoun scheme.
type Table map[string]Scheme

// Default is the built-in table.
var Default = Table{
	"en": {
		Parts:   2,
		Subject: []string{"he", "she", "they"},
		Object:  []string{"him", "her", "them"},
	},
	"de": {
		Parts:   2,
		Subject: []string{"er", "sie", "es"},
		Object:  []string{"ihn", "sie", "es"},
	},
	"fr": {
		Parts:   2,
		Subject: []string{"il", "elle", "ils"},
		Object:  []string{"lui", "elle", "eux"},
	},
}

// Expand returns the displayable strings for a scheme.
func (s Scheme) Expand() ([]string, error) {
	switch s.Parts {
	case 1:
		out := make([]string, len(s.Subject))
		copy(out, s.Subject)
		return out, nil
	case 2:
		out := make([]string, 0, len(s.Subject)*len(s.Object))
		for _, subj := range s.Subject {
			for _, obj := range s.Object {
				out = append(out, subj+"/"+obj)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d parts", ErrUnsupportedScheme, s.Parts)
	}
}

// Generate returns the pronoun strings for lang.
// Returns an *UnknownLanguageError if lang is not in the table.
func (t Table) Generate(lang string) ([]string, error) {
	s, ok := t[lang]
	if !ok {
		return nil, &UnknownLanguageError{Language: lang}
	}
	values, err := s.Expand()
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", lang, err)
	}
	return values, nil
}

// List holds the generated pronouns of one language.
type List struct {
	Language string
	Values   []string
}

// Lists is an ordered set of per-language pronoun lists.
// It marshals to a JSON object keyed by language, preserving order.
type Lists []List

// Get returns the values for lang.
func (l Lists) Get(lang string) ([]string, bool) {
	for _, item := range l {
		if item.Language == lang {
			return item.Values, true
		}
	}
	return nil, false
}

func (l Lists) MarshalJSON() ([]byte, error) {
	return orderedjson.Marshal(len(l), func(i int) (string, any) {
		values := l[i].Values
		if values == nil {
			values = []string{}
		}
		return l[i].Language, values
	})
}

// Filter generates the lists for exactly the given languages, in order.
// Fails on the first language the table does not know.
func (t Table) Filter(languages []string) (Lists, error) {
	out := make(Lists, 0, len(languages))
	for _, lang := range languages {
		values, err := t.Generate(lang)
		if err != nil {
			return nil, err
		}
		out = append(out, List{Language: lang, Values: values})
	}
	return out, nil
}
