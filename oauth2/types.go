package oauth2

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
// Determines what credentials are required to obtain tokens.
type GrantType string

const (
	// RefreshTokenCodeGrant exchanges a refresh token for new tokens.
	// Used in: Token refresh flow (get new access token without re-authenticating user)
	// Token request includes: refresh_token (plus client credentials for OAuth2 backends)
	// Returns: rotated refresh_token, and an access token or access cookie
	RefreshTokenCodeGrant GrantType = "refresh_token"
)

// RefreshRequest is the payload sent to the platform's refresh endpoint.
// The platform backends accept the bare refresh token; the access credential
// comes back as an HTTP-only cookie on the shared cookie jar.
type RefreshRequest struct {
	// RefreshToken is the credential read from the credential store.
	// Example: "tGzv3JOkF0XG5Qx2TlKWIA"
	// Empty when nothing is stored; the backend rejects it and the exchange fails.
	RefreshToken string `json:"refresh_token"`
}
