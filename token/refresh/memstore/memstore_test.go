package memstore_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/jrsteele09/go-admin-client/token/refresh/memstore"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewWithCredential("old-token")

	v, ok, err := s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "old-token", v)

	require.NoError(t, s.Set(ctx, refresh.CredentialKey, "new-token"))
	v, _, _ = s.Get(ctx, refresh.CredentialKey)
	require.Equal(t, "new-token", v)

	require.NoError(t, s.Remove(ctx, refresh.CredentialKey))
	require.NoError(t, s.Remove(ctx, refresh.CredentialKey))
	_, ok, err = s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.False(t, ok)
}
