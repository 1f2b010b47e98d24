package orgconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sigcraft/pkg/storage"
)

// LoadServerConfig reads, parses and normalizes the config file stored under key.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadServerConfig(ctx context.Context, store storage.Storage, key string) (*ServerConfig, error) {
	data, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, key)
		}
		return nil, errors.Join(ErrConfigRead, err)
	}

	raw, err := ParseRawConfig(data, path.Ext(key))
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// ParseRawConfig decodes the file contents. ext selects the format.
func ParseRawConfig(data []byte, ext string) (RawConfig, error) {
	var raw RawConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return RawConfig{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return RawConfig{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	return raw, nil
}

// TemplateKey returns the file name of a template.
func TemplateKey(orgID, lang string, kind Kind) string {
	return fmt.Sprintf("%s-%s.%s", orgID, lang, kind)
}

// LoadTemplates reads every template the configuration declares from the
// store under prefix. A declared but absent file is a *TemplateError.
func LoadTemplates(ctx context.Context, store storage.Storage, prefix string, cfg *ServerConfig) (Templates, error) {
	out := make(Templates, len(cfg.Organizations))
	for _, org := range cfg.Organizations {
		byLang := make(LocalizedTemplates, len(cfg.Languages))
		for _, lang := range cfg.Languages {
			var list TemplateList
			for _, kind := range org.Kinds() {
				content, err := loadTemplate(ctx, store, prefix, org.ID, lang.Code, kind)
				if err != nil {
					return nil, err
				}
				switch kind {
				case KindHTML:
					list.HTML = &content
				case KindTXT:
					list.TXT = &content
				}
			}
			byLang[lang.Code] = list
		}
		out[org.ID] = byLang
	}
	return out, nil
}

func loadTemplate(ctx context.Context, store storage.Storage, prefix, orgID, lang string, kind Kind) (string, error) {
	key := storage.JoinKey(prefix, TemplateKey(orgID, lang, kind))
	data, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", &TemplateError{OrgID: orgID, Language: lang, Kind: kind}
		}
		return "", errors.Join(ErrTemplateRead, fmt.Errorf("%s: %w", key, err))
	}
	return string(data), nil
}
