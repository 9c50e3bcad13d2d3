package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned for credentials that are not JWTs. Opaque refresh
// tokens are valid; they simply carry no readable claims.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims holds the readable claims of a credential issued by the backend.
// Signatures are not verified: the client only uses them for display and logging.
type Claims struct {
	Subject   string
	Issuer    string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry that lies before now
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect extracts claims from a raw JWT without verifying it
func Inspect(rawToken string) (*Claims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if strings.Count(rawToken, ".") != 2 {
		return nil, ErrOpaqueToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, &jwtlib.RegisteredClaims{})
	if err != nil {
		return nil, err
	}
	registered, ok := token.Claims.(*jwtlib.RegisteredClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}

	claims := &Claims{
		Subject: registered.Subject,
		Issuer:  registered.Issuer,
		ID:      registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
