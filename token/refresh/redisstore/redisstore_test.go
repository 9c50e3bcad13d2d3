package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/jrsteele09/go-admin-client/token/refresh/redisstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := redisstore.New(client, "", 0)

	_, ok, err := s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, refresh.CredentialKey, "new-token"))
	stored, err := mr.Get(redisstore.DefaultPrefix + refresh.CredentialKey)
	require.NoError(t, err)
	require.Equal(t, "new-token", stored)

	v, ok, err := s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new-token", v)

	require.NoError(t, s.Remove(ctx, refresh.CredentialKey))
	require.NoError(t, s.Remove(ctx, refresh.CredentialKey))
	require.False(t, mr.Exists(redisstore.DefaultPrefix+refresh.CredentialKey))
}

func TestStoreTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := redisstore.New(client, "tenant-1:", time.Hour)

	require.NoError(t, s.Set(ctx, refresh.CredentialKey, "token"))
	require.Equal(t, time.Hour, mr.TTL("tenant-1:"+refresh.CredentialKey))

	mr.FastForward(2 * time.Hour)
	_, ok, err := s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreUnavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	s := redisstore.New(client, "", 0)
	mr.Close()

	_, _, err := s.Get(context.Background(), refresh.CredentialKey)
	require.Error(t, err)
}
