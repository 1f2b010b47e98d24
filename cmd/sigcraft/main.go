// Command sigcraft serves the e-mail signature editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/sigcraft"
	"github.com/dmitrymomot/sigcraft/handlers"
	"github.com/dmitrymomot/sigcraft/locales"
	"github.com/dmitrymomot/sigcraft/middlewares"
	"github.com/dmitrymomot/sigcraft/pkg/config"
	"github.com/dmitrymomot/sigcraft/pkg/cookie"
	"github.com/dmitrymomot/sigcraft/pkg/i18n"
	"github.com/dmitrymomot/sigcraft/pkg/logger"
	"github.com/dmitrymomot/sigcraft/pkg/oauth"
	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/pronouns"
	"github.com/dmitrymomot/sigcraft/pkg/redis"
	"github.com/dmitrymomot/sigcraft/pkg/session"
	"github.com/dmitrymomot/sigcraft/pkg/storage"
)

type appConfig struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ConfigFile      string        `env:"CONFIG_FILE,required"`
	TemplateDir     string        `env:"TEMPLATE_DIR,required"`
	SessionMaxAge   time.Duration `env:"SESSION_MAX_AGE" envDefault:"8h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// MaxAudiences bounds the per-audience configuration cache.
	MaxAudiences int `env:"MAX_AUDIENCES" envDefault:"1024"`

	Log     logger.Config
	Cookie  cookie.Config
	Redis   redis.Config
	S3      storage.S3Config
	AzureAD oauth.AzureADConfig
}

var errNoCookieSecret = errors.New("COOKIE_SECRET is required")

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("sigcraft stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())

	// Configuration errors are fatal: load everything before serving.
	configStore, configKey, err := storage.Open(ctx, cfg.ConfigFile, cfg.S3)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	templateStore, templatePrefix, err := storage.OpenDir(ctx, cfg.TemplateDir, cfg.S3)
	if err != nil {
		return fmt.Errorf("template dir: %w", err)
	}
	loader := orgconfig.NewLoader(configStore, configKey, templateStore, templatePrefix,
		orgconfig.WithLogger(log))
	configs := handlers.NewConfigs(loader, pronouns.Default, cfg.MaxAudiences)
	if _, err := configs.For(ctx, nil); err != nil {
		return err
	}

	if cfg.Cookie.Secret == "" {
		return errNoCookieSecret
	}
	cookies, err := cookie.New(cfg.Cookie)
	if err != nil {
		return err
	}

	provider, err := oauth.NewAzureADProvider(cfg.AzureAD)
	if err != nil {
		return err
	}

	catalog, err := i18n.New(i18n.WithYAMLDir(locales.FS))
	if err != nil {
		return err
	}

	checks := []sigcraft.HealthOption{sigcraft.WithReadinessCheck("config", loader.Ready)}
	runOpts := []sigcraft.RunOption{
		sigcraft.Logger(log),
		sigcraft.ShutdownTimeout(cfg.ShutdownTimeout),
	}

	var store sigcraft.SessionStore
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		store = session.NewRedisStore(client, "sigcraft:session")
		checks = append(checks, sigcraft.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, sigcraft.ShutdownHook(redis.Shutdown(client)))
	} else {
		mem := session.NewMemoryStore()
		store = mem
		runOpts = append(runOpts, sigcraft.ShutdownHook(func(context.Context) error { return mem.Close() }))
	}
	runOpts = append(runOpts, sigcraft.ShutdownHook(logger.Flush(2*time.Second)))

	app := sigcraft.New(
		sigcraft.WithLogger(log),
		sigcraft.WithCookieManager(cookies),
		sigcraft.WithSession(store, sigcraft.WithSessionMaxAge(cfg.SessionMaxAge)),
		sigcraft.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Identity(),
			middlewares.Language(catalog),
		),
		sigcraft.WithHandlers(
			handlers.NewAuth(provider),
			handlers.NewEditor(configs),
			handlers.NewAPI(configs),
		),
		sigcraft.WithErrorHandler(handlers.ErrorHandler),
		sigcraft.WithNotFoundHandler(handlers.NotFound),
		sigcraft.WithHealthChecks(checks...),
	)

	log.Info("starting sigcraft", "address", cfg.Address, "config", cfg.ConfigFile, "redis", cfg.Redis.Enabled())
	return app.Run(cfg.Address, runOpts...)
}
