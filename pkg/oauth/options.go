package oauth

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

type Option func(*options)

type options struct {
	httpClient *http.Client
	endpoint   *oauth2.Endpoint
	now        func() time.Time
}

// WithHTTPClient sets the client used for the token exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithEndpoint overrides the Microsoft identity platform endpoint.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(o *options) {
		o.endpoint = &e
	}
}

// WithClock replaces time.Now when checking token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
