package htmx

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// Renderable is satisfied by templ components.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config collects the response headers and out-of-band fragments of a
// single htmx render.
type Config struct {
	OOBComponents []Renderable
	Retarget      string
	Reswap        SwapStrategy
	Triggers      []string
	Refresh       bool
}

type RenderOption func(*Config)

func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders must run before the status line is written.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if len(c.Triggers) > 0 {
		h.Set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// RenderOOB writes the out-of-band fragments after the main component.
// Each fragment must carry its own id and hx-swap-oob attribute.
func (c *Config) RenderOOB(ctx context.Context, w io.Writer) error {
	if c == nil {
		return nil
	}
	for _, comp := range c.OOBComponents {
		if err := comp.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// WithOOB appends out-of-band fragments, for example the plaintext
// preview rendered next to the HTML one.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget points the swap at another element, typically an error box.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithTrigger fires client-side events. Multiple events are comma-joined.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, events...)
	}
}

func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}
