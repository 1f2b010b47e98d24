package oauth

// AzureADConfig holds the app registration of the signature tool.
type AzureADConfig struct {
	ClientID     string   `env:"AZURE_AD_CLIENT_ID"`
	ClientSecret string   `env:"AZURE_AD_CLIENT_SECRET"`
	TenantID     string   `env:"AZURE_AD_TENANT_ID" envDefault:"organizations"`
	RedirectURL  string   `env:"AZURE_AD_REDIRECT_URL"`
	Scopes       []string `env:"AZURE_AD_SCOPES" envSeparator:","`
}
