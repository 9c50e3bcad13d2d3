package refresh

import (
	"context"

	"github.com/jrsteele09/go-admin-client/oauth2"
)

// CredentialKey is the storage key the refresh credential lives under.
const CredentialKey = "refresh_token"

// Store is durable key/value storage for the refresh credential.
// The coordinator reads and overwrites CredentialKey; the HTTP clients remove it
// on terminal authorization failures. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Exchanger trades a refresh credential for a new one against the
// authentication backend. Any returned error is treated as exchange failure.
type Exchanger interface {
	RefreshToken(ctx context.Context, req oauth2.RefreshRequest) (*oauth2.TokenResponse, error)
}

// ExchangerFunc adapts a function to the Exchanger interface.
type ExchangerFunc func(ctx context.Context, req oauth2.RefreshRequest) (*oauth2.TokenResponse, error)

func (f ExchangerFunc) RefreshToken(ctx context.Context, req oauth2.RefreshRequest) (*oauth2.TokenResponse, error) {
	return f(ctx, req)
}
