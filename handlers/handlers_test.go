package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/sigcraft"
	"github.com/dmitrymomot/sigcraft/handlers"
	"github.com/dmitrymomot/sigcraft/locales"
	"github.com/dmitrymomot/sigcraft/middlewares"
	"github.com/dmitrymomot/sigcraft/pkg/cookie"
	"github.com/dmitrymomot/sigcraft/pkg/i18n"
	"github.com/dmitrymomot/sigcraft/pkg/oauth"
	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/pronouns"
	"github.com/dmitrymomot/sigcraft/pkg/session"
	"github.com/dmitrymomot/sigcraft/pkg/storage"
)

const fixtureConfig = `{
  "languages": {"en": "English", "de": "Deutsch"},
  "pronouns": true,
  "organizations": {
    "acme": {
      "name": "ACME",
      "domains": ["acme.com"],
      "enforce_access": true,
      "address": "1 Main St",
      "positions": [
        {"en": {"neutral": "Engineer"}, "de": {"neutral": "Ingenieur:in"}},
        {"en": {"neutral": "Director"}, "de": {"female": "Direktorin", "male": "Direktor"}},
        {"en": {"neutral": "Founder"}, "de": {"neutral": "Gründer:in"}}
      ],
      "maxPositions": 2,
      "templateFields": {"name": true, "email": true, "phone": true, "address": true, "positions": true, "pronouns": true},
      "html": true,
      "txt": true
    },
    "open": {
      "name": "Open",
      "templateFields": {"name": true},
      "txt": true
    }
  }
}`

var fixtureTemplates = map[string]string{
	"acme-en.html": `<p><b>{{name}}</b> ({{pronouns}})<br>{{position}} / {{position}}<br>{{email}} {{phone}}<br>{{address}}</p>`,
	"acme-en.txt":  "{{name}}\n{{all_positions}}\n{{address}}",
	"acme-de.html": `<p><b>{{name}}</b><br>{{all_positions}}<br>{{address}}</p>`,
	"acme-de.txt":  "{{name}}\n{{all_positions}}",
	"open-en.txt":  "{{name}} at Open",
	"open-de.txt":  "{{name}} bei Open",
}

func newLoader(t *testing.T) *orgconfig.Loader {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(fixtureConfig), 0o600))
	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.Mkdir(tplDir, 0o700))
	for name, content := range fixtureTemplates {
		require.NoError(t, os.WriteFile(filepath.Join(tplDir, name), []byte(content), 0o600))
	}
	return orgconfig.NewLoader(storage.NewLocal(dir), "config.json", storage.NewLocal(tplDir), "")
}

// fakeProvider signs in whoever it was configured with.
type fakeProvider struct {
	mu    sync.Mutex
	user  oauth.UserInfo
	nonce string
	// replayNonce, when set, is reported instead of the requested nonce.
	replayNonce string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	cfg := oauth2.Config{ClientID: "client", Endpoint: oauth2.Endpoint{AuthURL: "https://idp.test/authorize"}}
	raw := cfg.AuthCodeURL(state, opts...)
	u, _ := url.Parse(raw)
	p.mu.Lock()
	p.nonce = u.Query().Get("nonce")
	p.mu.Unlock()
	return raw
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, oauth.ErrExchangeFailed
	}
	return &oauth2.Token{AccessToken: "token"}, nil
}

func (p *fakeProvider) FetchUserInfo(context.Context, *oauth2.Token) (*oauth.UserInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	info := p.user
	info.Nonce = p.nonce
	if p.replayNonce != "" {
		info.Nonce = p.replayNonce
	}
	return &info, nil
}

func newApp(t *testing.T, provider oauth.Provider, loader handlers.ConfigLoader) http.Handler {
	t.Helper()

	cm, err := cookie.New(cookie.Config{Secret: strings.Repeat("s", 32)})
	require.NoError(t, err)
	store := session.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	catalog, err := i18n.New(i18n.WithYAMLDir(locales.FS))
	require.NoError(t, err)

	configs := handlers.NewConfigs(loader, pronouns.Default, 16)
	app := sigcraft.New(
		sigcraft.WithCookieManager(cm),
		sigcraft.WithSession(store),
		sigcraft.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Identity(),
			middlewares.Language(catalog),
		),
		sigcraft.WithErrorHandler(handlers.ErrorHandler),
		sigcraft.WithNotFoundHandler(handlers.NotFound),
		sigcraft.WithHandlers(
			handlers.NewAuth(provider),
			handlers.NewEditor(configs),
			handlers.NewAPI(configs),
		),
	)
	return app.Router()
}

// browser keeps cookies between requests the way a user agent does.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, handler: h, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) get(target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.do(req)
}

func (b *browser) post(target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.do(req)
}

// signIn runs the whole sign-in flow for user.
func signIn(t *testing.T, user oauth.UserInfo) *browser {
	t.Helper()
	return signInWith(t, user, newLoader(t))
}

func signInWith(t *testing.T, user oauth.UserInfo, loader handlers.ConfigLoader) *browser {
	t.Helper()

	b := newBrowser(t, newApp(t, &fakeProvider{user: user}, loader))
	w := b.get("/auth/login", false)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)

	w = b.get("/auth/callback?code=abc&state="+url.QueryEscape(loc.Query().Get("state")), false)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	return b
}

func body(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	data, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(data)
}

var ada = oauth.UserInfo{ID: "1", Email: "ada@acme.com", Name: "Ada Lovelace", Roles: []string{"staff"}}

func oauthUser(email, name string) oauth.UserInfo {
	return oauth.UserInfo{ID: email, Email: email, Name: name}
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
