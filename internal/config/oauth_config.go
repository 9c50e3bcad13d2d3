package config

// OAuthConfig switches the refresh exchange from the platform endpoint to a
// standard OAuth2 token endpoint. Leave both URLs empty to use the platform.
type OAuthConfig interface {
	GetOAuthTokenURL() string
	GetOAuthIssuer() string
	GetOAuthClientID() string
	GetOAuthClientSecret() string
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetOAuthTokenURL() string {
	return GetEnv("OAUTH_TOKEN_URL", "")
}

// GetOAuthIssuer enables OIDC discovery; it takes precedence over the token URL
func (OAuth) GetOAuthIssuer() string {
	return GetEnv("OAUTH_ISSUER", "")
}

func (OAuth) GetOAuthClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "")
}

func (OAuth) GetOAuthClientSecret() string {
	return GetEnv("OAUTH_CLIENT_SECRET", "")
}
