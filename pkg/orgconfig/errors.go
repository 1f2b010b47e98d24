package orgconfig

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound   = errors.New("orgconfig: config file not found")
	ErrConfigParse      = errors.New("orgconfig: malformed config file")
	ErrConfigValidation = errors.New("orgconfig: invalid config")
	ErrConfigRead       = errors.New("orgconfig: failed to read config")
	ErrTemplateMissing  = errors.New("orgconfig: template missing")
	ErrTemplateRead     = errors.New("orgconfig: failed to read template")
)

// TemplateError names a template file that was declared but not found.
type TemplateError struct {
	OrgID    string
	Language string
	Kind     Kind
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s template for %q in language %q was marked as available but corresponding file doesn't exist",
		e.Kind, e.OrgID, e.Language)
}

func (e *TemplateError) Unwrap() error {
	return ErrTemplateMissing
}

// ValidationError describes a configuration that parsed but is unusable.
// OrgID is empty for file-level problems.
type ValidationError struct {
	OrgID  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.OrgID == "" {
		return "invalid config: " + e.Reason
	}
	return fmt.Sprintf("invalid config for organization %q: %s", e.OrgID, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrConfigValidation
}
