package orgconfig

import (
	"fmt"
	"slices"
)

// Normalize validates a raw configuration and applies defaults.
func Normalize(raw RawConfig) (*ServerConfig, error) {
	entries := raw.Organizations
	if len(entries) == 0 {
		entries = raw.Organisations
	}
	if len(entries) == 0 {
		return nil, &ValidationError{Reason: "no organizations configured"}
	}
	if len(raw.Languages) == 0 {
		return nil, &ValidationError{Reason: "no languages configured"}
	}

	seen := make(map[string]struct{}, len(raw.Languages))
	for _, lang := range raw.Languages {
		if lang.Code == "" {
			return nil, &ValidationError{Reason: "empty language code"}
		}
		if _, dup := seen[lang.Code]; dup {
			return nil, &ValidationError{Reason: fmt.Sprintf("language %q listed twice", lang.Code)}
		}
		seen[lang.Code] = struct{}{}
	}

	orgs := make(Organizations, 0, len(entries))
	for _, entry := range entries {
		if _, dup := orgs.Get(entry.ID); dup {
			return nil, &ValidationError{OrgID: entry.ID, Reason: "organization listed twice"}
		}
		org, err := NormalizeOrganization(entry.ID, entry.Organization)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}

	return &ServerConfig{
		Languages:     slices.Clone(raw.Languages),
		Pronouns:      raw.Pronouns,
		Organizations: orgs,
	}, nil
}

// NormalizeOrganization validates one organization and applies defaults.
func NormalizeOrganization(id string, raw RawOrganization) (*Organization, error) {
	if !raw.HTML && !raw.TXT {
		return nil, &ValidationError{OrgID: id, Reason: "neither html nor txt templates declared"}
	}
	for i, pos := range raw.Positions {
		for lang, v := range pos {
			if v.Empty() {
				return nil, &ValidationError{
					OrgID:  id,
					Reason: fmt.Sprintf("position %d has no variant for language %q", i, lang),
				}
			}
		}
	}

	org := &Organization{
		ID:             id,
		Name:           raw.Name,
		Domains:        slices.Clone(raw.Domains),
		Roles:          slices.Clone(raw.Roles),
		EnforceAccess:  raw.EnforceAccess != nil && *raw.EnforceAccess,
		Positions:      raw.Positions,
		MaxPositions:   normalizeMaxPositions(raw.MaxPositions),
		GenderRequired: genderRequired(raw.Positions),
		Fields:         normalizeFields(raw.TemplateFields),
		HTML:           raw.HTML,
		TXT:            raw.TXT,
	}
	if raw.Address != nil {
		org.Address = *raw.Address
	}
	return org, nil
}

func normalizeMaxPositions(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func genderRequired(positions []Position) bool {
	for _, pos := range positions {
		for _, v := range pos {
			if v.Gendered() {
				return true
			}
		}
	}
	return false
}

func normalizeFields(raw *RawFieldVisibility) FieldVisibility {
	var f FieldVisibility
	if raw == nil {
		return f
	}
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Name, raw.Name)
	set(&f.Address, raw.Address)
	set(&f.Email, raw.Email)
	set(&f.Phone, raw.Phone)
	set(&f.Positions, raw.Positions)
	set(&f.Pronouns, raw.Pronouns)
	return f
}
