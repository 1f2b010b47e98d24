package pronouns

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLanguage is returned when a language is absent from the table.
	ErrUnknownLanguage = errors.New("pronouns: unknown language")

	// ErrUnsupportedScheme is returned for schemes with a parts count other than 1 or 2.
	ErrUnsupportedScheme = errors.New("pronouns: unsupported scheme")
)

// UnknownLanguageError names the language missing from the table.
type UnknownLanguageError struct {
	Language string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("pronouns for language %q not implemented, disable the pronoun feature or add the language to the table", e.Language)
}

func (e *UnknownLanguageError) Unwrap() error {
	return ErrUnknownLanguage
}
