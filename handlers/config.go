package handlers

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/sigcraft"
	"github.com/dmitrymomot/sigcraft/middlewares"
	"github.com/dmitrymomot/sigcraft/pkg/access"
	"github.com/dmitrymomot/sigcraft/pkg/cache"
	"github.com/dmitrymomot/sigcraft/pkg/orgconfig"
	"github.com/dmitrymomot/sigcraft/pkg/pronouns"
)

// ConfigLoader provides the memoized configuration and templates.
// *orgconfig.Loader implements it.
type ConfigLoader interface {
	Load(ctx context.Context) (*orgconfig.ServerConfig, orgconfig.Templates, error)
}

// Configs resolves the client configuration of a caller. Results are
// shared by everyone with the same audience.
type Configs struct {
	loader ConfigLoader
	table  pronouns.Table
	memo   *cache.Memo[*access.ClientConfig]
}

// NewConfigs creates a resolver keeping at most maxAudiences results.
func NewConfigs(loader ConfigLoader, table pronouns.Table, maxAudiences int) *Configs {
	return &Configs{
		loader: loader,
		table:  table,
		memo:   cache.NewMemo[*access.ClientConfig](cache.NewMemory[*access.ClientConfig](cache.WithMaxEntries(maxAudiences))),
	}
}

// For returns the configuration visible to id.
func (s *Configs) For(ctx context.Context, id *access.Identity) (*access.ClientConfig, error) {
	return s.memo.Get(ctx, id.Audience(), func(ctx context.Context) (*access.ClientConfig, error) {
		cfg, tpls, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		return access.Filter(cfg, tpls, s.table, id)
	})
}

// API serves the client configuration as JSON.
type API struct {
	configs *Configs
}

// NewAPI creates the API handler.
func NewAPI(configs *Configs) *API {
	return &API{configs: configs}
}

// Routes implements sigcraft.Handler.
func (h *API) Routes(r sigcraft.Router) {
	r.GET("/api/config", h.config, middlewares.RequireIdentity(forbidden))
}

// config returns the organizations visible to the caller.
func (h *API) config(c sigcraft.Context) error {
	cc, err := h.configs.For(c, middlewares.GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cc)
}

// forbidden answers with an empty 403.
func forbidden(c sigcraft.Context) error {
	return c.NoContent(http.StatusForbidden)
}
