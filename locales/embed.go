// Package locales embeds the editor's label catalogs.
package locales

import "embed"

//go:embed *.yaml
var FS embed.FS
