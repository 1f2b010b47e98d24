package orgconfig

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/sigcraft/pkg/storage"
)

// Loader loads the configuration and templates once and serves the cached
// result afterwards. Errors are cached too: configuration is not reloaded
// until the process restarts.
type Loader struct {
	configStore    storage.Storage
	configKey      string
	templateStore  storage.Storage
	templatePrefix string
	logger         *slog.Logger

	configOnce sync.Once
	config     *ServerConfig
	configErr  error

	templatesOnce sync.Once
	templates     Templates
	templatesErr  error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used to report loads.
func WithLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a loader reading the config file configKey from
// configStore and templates under templatePrefix from templateStore.
func NewLoader(configStore storage.Storage, configKey string, templateStore storage.Storage, templatePrefix string, opts ...LoaderOption) *Loader {
	l := &Loader{
		configStore:    configStore,
		configKey:      configKey,
		templateStore:  templateStore,
		templatePrefix: templatePrefix,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ServerConfig returns the memoized configuration.
// Only the first call reads the file; ctx of later calls is ignored.
func (l *Loader) ServerConfig(ctx context.Context) (*ServerConfig, error) {
	l.configOnce.Do(func() {
		l.config, l.configErr = LoadServerConfig(ctx, l.configStore, l.configKey)
		if l.configErr != nil {
			l.logger.ErrorContext(ctx, "failed to load server config",
				slog.String("key", l.configKey),
				slog.String("error", l.configErr.Error()))
			return
		}
		l.logger.InfoContext(ctx, "server config loaded",
			slog.String("key", l.configKey),
			slog.Int("languages", len(l.config.Languages)),
			slog.Int("organizations", len(l.config.Organizations)))
	})
	return l.config, l.configErr
}

// Templates returns the memoized templates, loading the configuration first
// if needed.
func (l *Loader) Templates(ctx context.Context) (Templates, error) {
	l.templatesOnce.Do(func() {
		cfg, err := l.ServerConfig(ctx)
		if err != nil {
			l.templatesErr = err
			return
		}
		l.templates, l.templatesErr = LoadTemplates(ctx, l.templateStore, l.templatePrefix, cfg)
		if l.templatesErr != nil {
			attrs := []any{slog.String("error", l.templatesErr.Error())}
			var te *TemplateError
			if errors.As(l.templatesErr, &te) {
				attrs = append(attrs,
					slog.String("org", te.OrgID),
					slog.String("language", te.Language),
					slog.String("kind", string(te.Kind)))
			}
			l.logger.ErrorContext(ctx, "failed to load templates", attrs...)
			return
		}
		l.logger.InfoContext(ctx, "templates loaded", slog.Int("organizations", len(l.templates)))
	})
	return l.templates, l.templatesErr
}

// Load loads both the configuration and the templates.
func (l *Loader) Load(ctx context.Context) (*ServerConfig, Templates, error) {
	cfg, err := l.ServerConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	tpls, err := l.Templates(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tpls, nil
}

// Ready is a readiness check reporting the outcome of the load.
func (l *Loader) Ready(ctx context.Context) error {
	_, _, err := l.Load(ctx)
	return err
}
