package oauth

import "errors"

var (
	ErrMissingClientID     = errors.New("oauth: missing client ID")
	ErrMissingClientSecret = errors.New("oauth: missing client secret")
	ErrMissingIDToken      = errors.New("oauth: token response has no id_token")
	ErrInvalidIDToken      = errors.New("oauth: malformed id_token")
	ErrClaimsMismatch      = errors.New("oauth: id_token claims rejected")
	ErrMissingEmail        = errors.New("oauth: id_token carries no email")
	ErrExchangeFailed      = errors.New("oauth: code exchange failed")
)
