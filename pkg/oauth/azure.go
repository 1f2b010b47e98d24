package oauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const (
	AzureADProviderName = "azure-ad"
	azureIssuerFormat   = "https://login.microsoftonline.com/%s/v2.0"
)

// AzureADDefaultScopes returns the OpenID scopes needed for email, name and roles.
func AzureADDefaultScopes() []string {
	return []string{"openid", "profile", "email"}
}

// multiTenant lists tenant aliases whose tokens carry the user's home tenant
// as issuer instead of the alias.
var multiTenant = []string{"common", "organizations", "consumers"}

// AzureADProvider signs users in against Microsoft Entra ID. Identity is
// read from the ID token returned by the token endpoint; the token travels
// over the back channel from Microsoft directly, so its claims are checked
// for audience, issuer and expiry instead of fetching signing keys.
type AzureADProvider struct {
	config     *oauth2.Config
	tenantID   string
	httpClient *http.Client
	now        func() time.Time
}

func NewAzureADProvider(cfg AzureADConfig, opts ...Option) (*AzureADProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	tenant := cfg.TenantID
	if tenant == "" {
		tenant = "organizations"
	}

	endpoint := microsoft.AzureADEndpoint(tenant)
	if o.endpoint != nil {
		endpoint = *o.endpoint
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = AzureADDefaultScopes()
	}

	return &AzureADProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		tenantID:   tenant,
		httpClient: o.httpClient,
		now:        o.now,
	}, nil
}

// Nonce binds the authorization request to the ID token it produces.
func Nonce(nonce string) oauth2.AuthCodeOption {
	return oauth2.SetAuthURLParam("nonce", nonce)
}

func (p *AzureADProvider) Name() string {
	return AzureADProviderName
}

func (p *AzureADProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

func (p *AzureADProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}
	return tok, nil
}

// FetchUserInfo reads the caller from the id_token. The email comes from
// the email claim, falling back to preferred_username and then upn. A
// missing roles claim yields an empty role list.
func (p *AzureADProvider) FetchUserInfo(_ context.Context, token *oauth2.Token) (*UserInfo, error) {
	raw, _ := token.Extra("id_token").(string)
	if raw == "" {
		return nil, ErrMissingIDToken
	}

	claims, err := decodeIDToken(raw)
	if err != nil {
		return nil, err
	}
	if err := p.verify(claims); err != nil {
		return nil, err
	}

	email := firstNonEmpty(claims.Email, claims.PreferredUsername, claims.UPN)
	if email == "" {
		return nil, ErrMissingEmail
	}

	roles := claims.Roles
	if roles == nil {
		roles = []string{}
	}

	return &UserInfo{
		ID:    firstNonEmpty(claims.OID, claims.Subject),
		Email: email,
		Name:  claims.Name,
		Roles: roles,
		Nonce: claims.Nonce,
	}, nil
}

func (p *AzureADProvider) verify(c *idTokenClaims) error {
	if !slices.Contains(c.Audience, p.config.ClientID) {
		return fmt.Errorf("%w: audience %v", ErrClaimsMismatch, []string(c.Audience))
	}

	tenant := p.tenantID
	if slices.Contains(multiTenant, tenant) {
		tenant = c.TenantID
	}
	if want := fmt.Sprintf(azureIssuerFormat, tenant); c.Issuer != want {
		return fmt.Errorf("%w: issuer %q", ErrClaimsMismatch, c.Issuer)
	}

	if c.Expiry == 0 || p.now().Unix() >= c.Expiry {
		return fmt.Errorf("%w: token expired", ErrClaimsMismatch)
	}
	return nil
}

type idTokenClaims struct {
	Issuer            string   `json:"iss"`
	Subject           string   `json:"sub"`
	Audience          audience `json:"aud"`
	Expiry            int64    `json:"exp"`
	Nonce             string   `json:"nonce"`
	TenantID          string   `json:"tid"`
	OID               string   `json:"oid"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	PreferredUsername string   `json:"preferred_username"`
	UPN               string   `json:"upn"`
	Roles             []string `json:"roles"`
}

// audience accepts both the string and the array form of aud.
type audience []string

func (a *audience) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*a = audience{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*a = many
	return nil
}

func decodeIDToken(raw string) (*idTokenClaims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidIDToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidIDToken, err)
	}
	var c idTokenClaims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, errors.Join(ErrInvalidIDToken, err)
	}
	return &c, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ Provider = (*AzureADProvider)(nil)
