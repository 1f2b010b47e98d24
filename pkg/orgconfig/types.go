package orgconfig

// Kind is a template format.
type Kind string

const (
	KindHTML Kind = "html"
	KindTXT  Kind = "txt"
)

// Variant holds the grammatical-gender forms of a position in one language.
// Absent forms are nil.
type Variant struct {
	Neutral *string `json:"neutral,omitempty" yaml:"neutral,omitempty"`
	Female  *string `json:"female,omitempty" yaml:"female,omitempty"`
	Male    *string `json:"male,omitempty" yaml:"male,omitempty"`
}

// Empty reports whether no form is defined.
func (v Variant) Empty() bool {
	return v.Neutral == nil && v.Female == nil && v.Male == nil
}

// Gendered reports whether a female or male form is defined.
func (v Variant) Gendered() bool {
	return v.Female != nil || v.Male != nil
}

// Position maps language codes to localized variants.
type Position map[string]Variant

// FieldVisibility controls which inputs the editor shows.
type FieldVisibility struct {
	Name      bool `json:"name"`
	Address   bool `json:"address"`
	Email     bool `json:"email"`
	Phone     bool `json:"phone"`
	Positions bool `json:"positions"`
	Pronouns  bool `json:"pronouns"`
}

// RawFieldVisibility is the partial visibility record as authored.
type RawFieldVisibility struct {
	Name      *bool `json:"name" yaml:"name"`
	Address   *bool `json:"address" yaml:"address"`
	Email     *bool `json:"email" yaml:"email"`
	Phone     *bool `json:"phone" yaml:"phone"`
	Positions *bool `json:"positions" yaml:"positions"`
	Pronouns  *bool `json:"pronouns" yaml:"pronouns"`
}

// RawOrganization is an organization entry as authored in the config file.
type RawOrganization struct {
	Name           string              `json:"name" yaml:"name"`
	Domains        []string            `json:"domains" yaml:"domains"`
	Roles          []string            `json:"roles" yaml:"roles"`
	EnforceAccess  *bool               `json:"enforce_access" yaml:"enforce_access"`
	Address        *string             `json:"address" yaml:"address"`
	Positions      []Position          `json:"positions" yaml:"positions"`
	MaxPositions   *int                `json:"maxPositions" yaml:"maxPositions"`
	TemplateFields *RawFieldVisibility `json:"templateFields" yaml:"templateFields"`
	HTML           bool                `json:"html" yaml:"html"`
	TXT            bool                `json:"txt" yaml:"txt"`
}

// Organization is a validated organization with defaults applied.
type Organization struct {
	ID            string
	Name          string
	Domains       []string
	Roles         []string
	EnforceAccess bool
	Address       string
	Positions     []Position
	// MaxPositions is the number of positions a signature may carry. Zero means unlimited.
	MaxPositions   int
	GenderRequired bool
	Fields         FieldVisibility
	HTML           bool
	TXT            bool
}

// Kinds returns the template kinds the organization declares.
func (o *Organization) Kinds() []Kind {
	kinds := make([]Kind, 0, 2)
	if o.TXT {
		kinds = append(kinds, KindTXT)
	}
	if o.HTML {
		kinds = append(kinds, KindHTML)
	}
	return kinds
}

// Language is a configured signature language.
type Language struct {
	Code string
	Name string
}

// Languages is the ordered list of configured languages.
type Languages []Language

// Codes returns the language codes in order.
func (l Languages) Codes() []string {
	codes := make([]string, len(l))
	for i, lang := range l {
		codes[i] = lang.Code
	}
	return codes
}

// Has reports whether code is configured.
func (l Languages) Has(code string) bool {
	for _, lang := range l {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// Organizations is the ordered list of normalized organizations.
type Organizations []*Organization

// Get returns the organization with the given id.
func (o Organizations) Get(id string) (*Organization, bool) {
	for _, org := range o {
		if org.ID == id {
			return org, true
		}
	}
	return nil, false
}

// ServerConfig is the validated configuration. It is read-only after load.
type ServerConfig struct {
	Languages     Languages
	Pronouns      bool
	Organizations Organizations
}

// TemplateList holds the templates of one organization in one language.
type TemplateList struct {
	HTML *string `json:"html,omitempty"`
	TXT  *string `json:"txt,omitempty"`
}

// Get returns the template of the given kind.
func (t TemplateList) Get(kind Kind) (string, bool) {
	var p *string
	switch kind {
	case KindHTML:
		p = t.HTML
	case KindTXT:
		p = t.TXT
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Empty reports whether neither kind is present.
func (t TemplateList) Empty() bool {
	return t.HTML == nil && t.TXT == nil
}

// LocalizedTemplates maps language codes to templates.
type LocalizedTemplates map[string]TemplateList

// Templates maps organization ids to their localized templates.
type Templates map[string]LocalizedTemplates

// Get returns the templates for an organization and language.
func (t Templates) Get(orgID, lang string) (TemplateList, bool) {
	byLang, ok := t[orgID]
	if !ok {
		return TemplateList{}, false
	}
	list, ok := byLang[lang]
	return list, ok
}
