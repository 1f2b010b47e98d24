package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

// UserInfo is the signed-in caller as reported by the identity provider.
type UserInfo struct {
	ID    string
	Email string
	Name  string
	// Roles are the app roles assigned to the user; empty when none.
	Roles []string
	// Nonce echoes the nonce sent with the authorization request.
	Nonce string
}

// Provider abstracts the OpenID Connect code flow.
type Provider interface {
	Name() string
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// FetchUserInfo extracts the caller from the token response. It fails
	// when the ID token is missing, expired or issued for another client.
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error)
}
