package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every {lang}.yaml (or .yml) file at the root of fsys.
func WithYAMLDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return fmt.Errorf("reading catalog dir: %w", err)
		}

		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(path.Ext(e.Name()))
			if ext != ".yaml" && ext != ".yml" {
				continue
			}

			data, err := fs.ReadFile(fsys, e.Name())
			if err != nil {
				return fmt.Errorf("reading %q: %w", e.Name(), err)
			}

			var labels map[string]any
			if err := yaml.Unmarshal(data, &labels); err != nil {
				return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, e.Name(), err)
			}

			lang := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
			i.add(lang, labels)
		}
		return nil
	}
}
