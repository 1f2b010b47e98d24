package orgconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sigcraft/pkg/orderedjson"
)

// RawConfig is the configuration file as authored.
type RawConfig struct {
	Languages     Languages        `json:"languages" yaml:"languages"`
	Pronouns      bool             `json:"pronouns" yaml:"pronouns"`
	Organizations RawOrganizations `json:"organizations" yaml:"organizations"`
	// Organisations is accepted as an alias of Organizations.
	Organisations RawOrganizations `json:"organisations" yaml:"organisations"`
}

// RawOrganizationEntry is one entry of the organizations map.
type RawOrganizationEntry struct {
	ID           string
	Organization RawOrganization
}

// RawOrganizations is the organizations map in file order.
type RawOrganizations []RawOrganizationEntry

func (r *RawOrganizations) UnmarshalJSON(data []byte) error {
	out := RawOrganizations{}
	err := decodeJSONObject(data, func(key string, dec *json.Decoder) error {
		var org RawOrganization
		if err := dec.Decode(&org); err != nil {
			return fmt.Errorf("organization %q: %w", key, err)
		}
		out = append(out, RawOrganizationEntry{ID: key, Organization: org})
		return nil
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

func (r *RawOrganizations) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: organizations must be a mapping", node.Line)
	}
	out := make(RawOrganizations, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var org RawOrganization
		if err := node.Content[i+1].Decode(&org); err != nil {
			return fmt.Errorf("organization %q: %w", key, err)
		}
		out = append(out, RawOrganizationEntry{ID: key, Organization: org})
	}
	*r = out
	return nil
}

// UnmarshalJSON accepts a code-to-name object or a plain list of codes.
// Codes from a list use the code as display name.
func (l *Languages) UnmarshalJSON(data []byte) error {
	var codes []string
	if err := json.Unmarshal(data, &codes); err == nil {
		*l = languagesFromCodes(codes)
		return nil
	}

	out := Languages{}
	err := decodeJSONObject(data, func(key string, dec *json.Decoder) error {
		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("language %q: %w", key, err)
		}
		out = append(out, Language{Code: key, Name: name})
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}

func (l *Languages) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var codes []string
		if err := node.Decode(&codes); err != nil {
			return err
		}
		*l = languagesFromCodes(codes)
		return nil
	case yaml.MappingNode:
		out := make(Languages, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var name string
			if err := node.Content[i+1].Decode(&name); err != nil {
				return fmt.Errorf("language %q: %w", node.Content[i].Value, err)
			}
			out = append(out, Language{Code: node.Content[i].Value, Name: name})
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: languages must be a mapping or a list", node.Line)
	}
}

func (l Languages) MarshalJSON() ([]byte, error) {
	return orderedjson.Marshal(len(l), func(i int) (string, any) {
		return l[i].Code, l[i].Name
	})
}

func languagesFromCodes(codes []string) Languages {
	out := make(Languages, len(codes))
	for i, code := range codes {
		out[i] = Language{Code: code, Name: code}
	}
	return out
}

// decodeJSONObject walks the members of a JSON object in order.
func decodeJSONObject(data []byte, member func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := member(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
