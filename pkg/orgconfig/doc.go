// Package orgconfig loads the organization configuration and signature
// templates, validates them and fills in defaults.
//
// The configuration file is JSON or YAML with three top-level keys:
//
//	{
//	  "languages": {"en": "English", "de": "Deutsch"},
//	  "pronouns": true,
//	  "organizations": {
//	    "acme": {
//	      "name": "ACME Corp",
//	      "domains": ["acme.com"],
//	      "enforce_access": true,
//	      "positions": [{"en": {"female": "Director", "male": "Director"}}],
//	      "maxPositions": 2,
//	      "templateFields": {"name": true, "positions": true},
//	      "html": true,
//	      "txt": true
//	    }
//	  }
//	}
//
// Key order of languages and organizations is preserved. For every
// organization and language, templates are read from "{org}-{lang}.txt" and
// "{org}-{lang}.html" according to the txt and html flags.
//
// Loader memoizes both loads for the lifetime of the process:
//
//	loader := orgconfig.NewLoader(cfgStore, "config.json", tplStore, "templates",
//		orgconfig.WithLogger(log),
//	)
//	cfg, err := loader.ServerConfig(ctx)
//	tpls, err := loader.Templates(ctx)
//
// All load failures are operator errors and wrap one of ErrConfigNotFound,
// ErrConfigParse, ErrConfigValidation or ErrTemplateMissing.
package orgconfig
