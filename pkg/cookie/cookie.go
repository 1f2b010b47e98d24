package cookie

import (
	"errors"
	"net/http"
	"time"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrDecrypt   = errors.New("cookie: decryption failed")
)

// Config is the environment-facing cookie configuration.
type Config struct {
	Secret string `env:"COOKIE_SECRET"`
	Domain string `env:"COOKIE_DOMAIN"`
	Secure bool   `env:"COOKIE_SECURE" envDefault:"true"`
}

// Manager reads and writes cookies with shared attributes. Encrypted
// cookies need a secret of at least 32 bytes.
type Manager struct {
	aead     *sealer
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

type Option func(*Manager)

// New applies opts over defaults of Path=/, HttpOnly and SameSite=Lax.
// It fails with ErrBadSecret when a secret shorter than 32 bytes is given.
func New(cfg Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		domain:   cfg.Domain,
		path:     "/",
		secure:   cfg.Secure,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	if cfg.Secret != "" {
		if len(cfg.Secret) < 32 {
			return nil, ErrBadSecret
		}
		s, err := newSealer([]byte(cfg.Secret))
		if err != nil {
			return nil, err
		}
		m.aead = s
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. A zero maxAge makes it a browser-session cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, m.cookie(name, value, int(maxAge.Seconds())))
}

func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
