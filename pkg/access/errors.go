package access

import (
	"errors"
	"fmt"
)

// ErrMissingTemplateForOrg is returned when an organization has no template
// for one of the configured languages.
var ErrMissingTemplateForOrg = errors.New("access: no matching template for org")

// MissingTemplateError names the organization and language without templates.
type MissingTemplateError struct {
	OrgID    string
	Language string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("no matching template for org %q in language %q", e.OrgID, e.Language)
}

func (e *MissingTemplateError) Unwrap() error {
	return ErrMissingTemplateForOrg
}
