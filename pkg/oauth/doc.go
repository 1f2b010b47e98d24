// Package oauth signs users in with Microsoft Entra ID (Azure AD).
//
// The [Provider] interface covers the authorization code flow. The
// [AzureADProvider] reads email, display name and app roles from the ID
// token so no Graph API call is needed:
//
//	p, err := oauth.NewAzureADProvider(oauth.AzureADConfig{
//		ClientID:     os.Getenv("AZURE_AD_CLIENT_ID"),
//		ClientSecret: os.Getenv("AZURE_AD_CLIENT_SECRET"),
//		TenantID:     os.Getenv("AZURE_AD_TENANT_ID"),
//		RedirectURL:  "https://signatures.example.com/auth/callback",
//	})
//
//	http.Redirect(w, r, p.AuthCodeURL(state, oauth.Nonce(nonce)), http.StatusFound)
//
//	tok, err := p.Exchange(ctx, r.URL.Query().Get("code"))
//	user, err := p.FetchUserInfo(ctx, tok)
//
// Roles are the values of the roles claim, configured as app roles on the
// app registration. Organizations restrict access by those role names.
package oauth
