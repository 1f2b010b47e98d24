package access

import (
	"strings"

	"github.com/dmitrymomot/sigcraft/pkg/orderedjson"
	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/pronouns"
)

// ClientOrg is the client-safe view of an organization.
type ClientOrg struct {
	ID             string                       `json:"-"`
	Name           string                       `json:"name"`
	Positions      []orgconfig.Position         `json:"positions"`
	GenderRequired bool                         `json:"genderRequired"`
	MaxPositions   int                          `json:"maxPositions"`
	TemplateFields orgconfig.FieldVisibility    `json:"templateFields"`
	Address        string                       `json:"address"`
	Templates      orgconfig.LocalizedTemplates `json:"templates"`
}

// HasKind reports whether the organization has templates of kind in lang.
func (o *ClientOrg) HasKind(lang string, kind orgconfig.Kind) bool {
	_, ok := o.Templates[lang].Get(kind)
	return ok
}

// ClientOrgs is the ordered set of visible organizations.
// It marshals to a JSON object keyed by organization id.
type ClientOrgs []*ClientOrg

// Get returns the organization with the given id.
func (c ClientOrgs) Get(id string) (*ClientOrg, bool) {
	for _, org := range c {
		if org.ID == id {
			return org, true
		}
	}
	return nil, false
}

func (c ClientOrgs) MarshalJSON() ([]byte, error) {
	return orderedjson.Marshal(len(c), func(i int) (string, any) {
		return c[i].ID, c[i]
	})
}

// ClientConfig is the configuration visible to one caller.
type ClientConfig struct {
	Languages     orgconfig.Languages `json:"languages"`
	Pronouns      pronouns.Lists      `json:"pronouns,omitempty"`
	Organizations ClientOrgs          `json:"organizations"`
}

// Visible reports whether the organization is visible to id.
// A nil identity only sees organizations that do not enforce access.
func Visible(org *orgconfig.Organization, id *Identity) bool {
	if !org.EnforceAccess {
		return true
	}
	if len(org.Domains) > 0 {
		if domain := id.Domain(); domain != "" {
			for _, d := range org.Domains {
				if strings.EqualFold(d, domain) {
					return true
				}
			}
		}
	}
	if len(org.Roles) > 0 && id.HasRole(org.Roles) {
		return true
	}
	return false
}

// Filter builds the client configuration for id. Pronoun lists are included
// only when the pronoun feature is enabled. Every organization must have
// templates for every configured language, even ones id cannot see.
func Filter(cfg *orgconfig.ServerConfig, tpls orgconfig.Templates, table pronouns.Table, id *Identity) (*ClientConfig, error) {
	for _, org := range cfg.Organizations {
		for _, lang := range cfg.Languages {
			list, ok := tpls.Get(org.ID, lang.Code)
			if !ok || list.Empty() {
				return nil, &MissingTemplateError{OrgID: org.ID, Language: lang.Code}
			}
		}
	}

	out := &ClientConfig{
		Languages:     cfg.Languages,
		Organizations: make(ClientOrgs, 0, len(cfg.Organizations)),
	}

	if cfg.Pronouns {
		lists, err := table.Filter(cfg.Languages.Codes())
		if err != nil {
			return nil, err
		}
		out.Pronouns = lists
	}

	for _, org := range cfg.Organizations {
		if !Visible(org, id) {
			continue
		}
		positions := org.Positions
		if positions == nil {
			positions = []orgconfig.Position{}
		}
		out.Organizations = append(out.Organizations, &ClientOrg{
			ID:             org.ID,
			Name:           org.Name,
			Positions:      positions,
			GenderRequired: org.GenderRequired,
			MaxPositions:   org.MaxPositions,
			TemplateFields: org.Fields,
			Address:        org.Address,
			Templates:      tpls[org.ID],
		})
	}
	return out, nil
}
