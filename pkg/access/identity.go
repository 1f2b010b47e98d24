package access

import (
	"slices"
	"strings"
)

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Domain returns the part of the e-mail address after "@", or "" if there is none.
func (i *Identity) Domain() string {
	if i == nil {
		return ""
	}
	_, rest, ok := strings.Cut(i.Email, "@")
	if !ok {
		return ""
	}
	domain, _, _ := strings.Cut(rest, "@")
	return domain
}

// HasRole reports whether the identity carries any of the given roles.
func (i *Identity) HasRole(roles []string) bool {
	if i == nil {
		return false
	}
	for _, want := range roles {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Audience identifies everyone who sees the same organizations as i: the
// lower-cased e-mail domain and the sorted roles. A nil identity has the
// empty audience.
func (i *Identity) Audience() string {
	if i == nil {
		return ""
	}
	roles := slices.Clone(i.Roles)
	slices.Sort(roles)
	roles = slices.Compact(roles)
	return strings.ToLower(i.Domain()) + "|" + strings.Join(roles, ",")
}
