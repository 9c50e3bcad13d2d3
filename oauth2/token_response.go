package oauth2

// TokenResponse represents the response from a refresh exchange.
// The platform backend only guarantees RefreshToken; OAuth2 backends fill the
// remaining RFC 6749 fields.
type TokenResponse struct {
	// AccessToken is the token used to access protected resources.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Only present: OAuth2 backends. The platform backend sets a cookie instead.
	AccessToken *string `json:"access_token,omitempty"`

	// IdToken is the OpenID Connect ID token containing user identity information.
	// Only present: When the exchanger talks to an OIDC provider with "openid" scope
	IdToken *string `json:"id_token,omitempty"`

	// TokenType indicates how to use the access token.
	// Example: "bearer"
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 900 (for 15 minutes)
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is the newly issued refresh credential.
	// Example: "tGzv3JOkF0XG5Qx2TlKWIA"
	// Usage: Overwrites the stored credential (key "refresh_token")
	// Security: Rotates on each use
	RefreshToken *string `json:"refresh_token,omitempty"`

	// Scope indicates the access token's granted permissions.
	Scope string `json:"scope,omitempty"`
}
