package orgconfig_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/storage"
)

func ptr[T any](v T) *T { return &v }

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
}

const sampleConfig = `{
  "languages": {"en": "English", "de": "Deutsch"},
  "pronouns": true,
  "organizations": {
    "zeta": {
      "name": "Zeta",
      "positions": [{"en": {"neutral": "Engineer"}, "de": {"neutral": "Ingenieur:in"}}],
      "txt": true
    },
    "acme": {
      "name": "ACME",
      "domains": ["acme.com"],
      "enforce_access": true,
      "address": "1 Main St",
      "positions": [{"en": {"female": "Director", "male": "Director"}}],
      "maxPositions": 2,
      "templateFields": {"name": true, "phone": false},
      "html": true,
      "txt": true
    }
  }
}`

func TestNormalizeOrganization(t *testing.T) {
	t.Parallel()

	t.Run("max positions", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			in   *int
			want int
		}{
			{name: "undefined", in: nil, want: 0},
			{name: "negative", in: ptr(-3), want: 0},
			{name: "zero", in: ptr(0), want: 0},
			{name: "positive", in: ptr(4), want: 4},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				org, err := orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{TXT: true, MaxPositions: tt.in})
				require.NoError(t, err)
				require.Equal(t, tt.want, org.MaxPositions)
			})
		}
	})

	t.Run("gender required", func(t *testing.T) {
		t.Parallel()

		neutralOnly := []orgconfig.Position{
			{"en": {Neutral: ptr("Engineer")}},
			{"de": {Neutral: ptr("Ingenieur:in")}},
		}
		org, err := orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{TXT: true, Positions: neutralOnly})
		require.NoError(t, err)
		require.False(t, org.GenderRequired)

		mixed := append(neutralOnly, orgconfig.Position{"fr": {Neutral: ptr("x"), Female: ptr("Directrice")}})
		org, err = orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{TXT: true, Positions: mixed})
		require.NoError(t, err)
		require.True(t, org.GenderRequired)

		org, err = orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{TXT: true})
		require.NoError(t, err)
		require.False(t, org.GenderRequired)
	})

	t.Run("field visibility defaults to false", func(t *testing.T) {
		t.Parallel()

		org, err := orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{
			TXT:            true,
			TemplateFields: &orgconfig.RawFieldVisibility{Name: ptr(true), Email: ptr(false)},
		})
		require.NoError(t, err)
		require.Equal(t, orgconfig.FieldVisibility{Name: true}, org.Fields)

		org, err = orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{TXT: true})
		require.NoError(t, err)
		require.Equal(t, orgconfig.FieldVisibility{}, org.Fields)
	})

	t.Run("address and access defaults", func(t *testing.T) {
		t.Parallel()

		org, err := orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{HTML: true})
		require.NoError(t, err)
		require.Empty(t, org.Address)
		require.False(t, org.EnforceAccess)
		require.Equal(t, []orgconfig.Kind{orgconfig.KindHTML}, org.Kinds())
	})

	t.Run("no template kind", func(t *testing.T) {
		t.Parallel()

		_, err := orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{Name: "O"})
		require.ErrorIs(t, err, orgconfig.ErrConfigValidation)
	})

	t.Run("empty position variant", func(t *testing.T) {
		t.Parallel()

		_, err := orgconfig.NormalizeOrganization("o", orgconfig.RawOrganization{
			TXT:       true,
			Positions: []orgconfig.Position{{"en": {}}},
		})
		var verr *orgconfig.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "o", verr.OrgID)
		require.Contains(t, verr.Error(), `"en"`)
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("empty organizations", func(t *testing.T) {
		t.Parallel()

		_, err := orgconfig.Normalize(orgconfig.RawConfig{
			Languages: orgconfig.Languages{{Code: "en", Name: "English"}},
		})
		require.ErrorIs(t, err, orgconfig.ErrConfigValidation)
	})

	t.Run("british spelling alias", func(t *testing.T) {
		t.Parallel()

		raw, err := orgconfig.ParseRawConfig([]byte(`{"languages":["en"],"organisations":{"a":{"name":"A","txt":true}}}`), ".json")
		require.NoError(t, err)

		cfg, err := orgconfig.Normalize(raw)
		require.NoError(t, err)
		require.Len(t, cfg.Organizations, 1)
		require.Equal(t, orgconfig.Languages{{Code: "en", Name: "en"}}, cfg.Languages)
	})

	t.Run("duplicate language", func(t *testing.T) {
		t.Parallel()

		_, err := orgconfig.Normalize(orgconfig.RawConfig{
			Languages:     orgconfig.Languages{{Code: "en"}, {Code: "en"}},
			Organizations: orgconfig.RawOrganizations{{ID: "a", Organization: orgconfig.RawOrganization{TXT: true}}},
		})
		require.ErrorIs(t, err, orgconfig.ErrConfigValidation)
	})
}

func TestParseRawConfig(t *testing.T) {
	t.Parallel()

	t.Run("json preserves order", func(t *testing.T) {
		t.Parallel()

		raw, err := orgconfig.ParseRawConfig([]byte(sampleConfig), ".json")
		require.NoError(t, err)
		require.Equal(t, []string{"en", "de"}, raw.Languages.Codes())
		require.Len(t, raw.Organizations, 2)
		require.Equal(t, "zeta", raw.Organizations[0].ID)
		require.Equal(t, "acme", raw.Organizations[1].ID)
		require.Equal(t, "Director", *raw.Organizations[1].Organization.Positions[0]["en"].Male)

		out, err := json.Marshal(raw.Languages)
		require.NoError(t, err)
		require.Equal(t, `{"en":"English","de":"Deutsch"}`, string(out))
	})

	t.Run("yaml preserves order", func(t *testing.T) {
		t.Parallel()

		doc := `
languages:
  fr: Français
  en: English
pronouns: false
organizations:
  beta:
    name: Beta
    html: true
    positions:
      - en: {neutral: Engineer}
  alpha:
    name: Alpha
    txt: true
    enforce_access: true
    roles: [staff]
`
		raw, err := orgconfig.ParseRawConfig([]byte(doc), ".YML")
		require.NoError(t, err)
		require.Equal(t, []string{"fr", "en"}, raw.Languages.Codes())
		require.Equal(t, "Français", raw.Languages[0].Name)
		require.Equal(t, "beta", raw.Organizations[0].ID)
		require.Equal(t, "alpha", raw.Organizations[1].ID)
		require.True(t, *raw.Organizations[1].Organization.EnforceAccess)
		require.Equal(t, []string{"staff"}, raw.Organizations[1].Organization.Roles)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		_, err := orgconfig.ParseRawConfig([]byte(`{"languages":`), ".json")
		require.ErrorIs(t, err, orgconfig.ErrConfigParse)

		_, err = orgconfig.ParseRawConfig([]byte("organizations: [1, 2"), ".yaml")
		require.ErrorIs(t, err, orgconfig.ErrConfigParse)
	})
}

func TestLoadServerConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := orgconfig.LoadServerConfig(ctx, storage.NewLocal(t.TempDir()), "config.json")
		require.ErrorIs(t, err, orgconfig.ErrConfigNotFound)
	})

	t.Run("loads and normalizes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"config.json": sampleConfig})

		cfg, err := orgconfig.LoadServerConfig(ctx, storage.NewLocal(dir), "config.json")
		require.NoError(t, err)
		require.True(t, cfg.Pronouns)

		acme, ok := cfg.Organizations.Get("acme")
		require.True(t, ok)
		require.True(t, acme.GenderRequired)
		require.True(t, acme.EnforceAccess)
		require.Equal(t, 2, acme.MaxPositions)
		require.Equal(t, "1 Main St", acme.Address)
		require.Equal(t, orgconfig.FieldVisibility{Name: true}, acme.Fields)

		zeta, ok := cfg.Organizations.Get("zeta")
		require.True(t, ok)
		require.False(t, zeta.GenderRequired)
		require.Equal(t, 0, zeta.MaxPositions)
	})
}

func TestLoadTemplates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg, err := orgconfig.Normalize(orgconfig.RawConfig{
		Languages: orgconfig.Languages{{Code: "en", Name: "English"}},
		Organizations: orgconfig.RawOrganizations{
			{ID: "acme", Organization: orgconfig.RawOrganization{Name: "ACME", TXT: true, HTML: true}},
			{ID: "zeta", Organization: orgconfig.RawOrganization{Name: "Zeta", HTML: true}},
		},
	})
	require.NoError(t, err)

	t.Run("reads declared kinds only", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"acme-en.txt":  "{{name}}",
			"acme-en.html": "<b>{{name}}</b>",
			"zeta-en.html": "<i>{{name}}</i>",
			"zeta-en.txt":  "not declared",
		})

		tpls, err := orgconfig.LoadTemplates(ctx, storage.NewLocal(dir), "", cfg)
		require.NoError(t, err)

		acme, ok := tpls.Get("acme", "en")
		require.True(t, ok)
		require.Equal(t, "{{name}}", *acme.TXT)
		require.Equal(t, "<b>{{name}}</b>", *acme.HTML)

		zeta, ok := tpls.Get("zeta", "en")
		require.True(t, ok)
		require.Nil(t, zeta.TXT)
		html, ok := zeta.Get(orgconfig.KindHTML)
		require.True(t, ok)
		require.Equal(t, "<i>{{name}}</i>", html)
	})

	t.Run("missing declared file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"acme-en.html": "<b>{{name}}</b>",
			"zeta-en.html": "<i>{{name}}</i>",
		})

		_, err := orgconfig.LoadTemplates(ctx, storage.NewLocal(dir), "", cfg)
		require.ErrorIs(t, err, orgconfig.ErrTemplateMissing)

		var terr *orgconfig.TemplateError
		require.ErrorAs(t, err, &terr)
		require.Equal(t, "acme", terr.OrgID)
		require.Equal(t, "en", terr.Language)
		require.Equal(t, orgconfig.KindTXT, terr.Kind)
		require.Contains(t, terr.Error(), `txt template for "acme" in language "en"`)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "tpl"), 0o700))
		writeFiles(t, filepath.Join(dir, "tpl"), map[string]string{
			"acme-en.txt":  "a",
			"acme-en.html": "b",
			"zeta-en.html": "c",
		})

		tpls, err := orgconfig.LoadTemplates(ctx, storage.NewLocal(dir), "tpl", cfg)
		require.NoError(t, err)
		require.Len(t, tpls, 2)
	})
}

type countingStore struct {
	storage.Storage
	gets atomic.Int32
}

func (c *countingStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	c.gets.Add(1)
	return c.Storage.Get(ctx, key)
}

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("memoizes across concurrent callers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"config.json":  sampleConfig,
			"zeta-en.txt":  "z",
			"zeta-de.txt":  "z",
			"acme-en.txt":  "a",
			"acme-de.txt":  "a",
			"acme-en.html": "a",
			"acme-de.html": "a",
		})
		store := &countingStore{Storage: storage.NewLocal(dir)}
		loader := orgconfig.NewLoader(store, "config.json", store, "")

		var wg sync.WaitGroup
		results := make([]*orgconfig.ServerConfig, 8)
		errs := make([]error, len(results))
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _, errs[i] = loader.Load(context.Background())
			}()
		}
		wg.Wait()

		for i, cfg := range results {
			require.NoError(t, errs[i])
			require.Same(t, results[0], cfg)
		}
		require.Equal(t, int32(7), store.gets.Load(), "one config read plus six templates")
		require.NoError(t, loader.Ready(context.Background()))
	})

	t.Run("caches failures", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		loader := orgconfig.NewLoader(storage.NewLocal(dir), "config.json", storage.NewLocal(dir), "")

		_, err := loader.ServerConfig(context.Background())
		require.ErrorIs(t, err, orgconfig.ErrConfigNotFound)

		writeFiles(t, dir, map[string]string{"config.json": sampleConfig})
		_, err = loader.ServerConfig(context.Background())
		require.ErrorIs(t, err, orgconfig.ErrConfigNotFound)

		_, err = loader.Templates(context.Background())
		require.ErrorIs(t, err, orgconfig.ErrConfigNotFound)
	})
}
