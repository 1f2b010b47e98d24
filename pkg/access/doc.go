// Package access decides which organizations a signed-in user may see and
// builds the client-safe configuration for that user.
//
// An organization without enforce_access is visible to everyone. Otherwise
// the user's e-mail domain must be in the organization's domain list, or one
// of the user's roles must be in its role list.
//
//	id := &access.Identity{Email: "jane@acme.com", Roles: []string{"staff"}}
//	view, err := access.Filter(cfg, templates, pronouns.Default, id)
//
// Domain, role and enforce_access settings never leave the server.
package access
