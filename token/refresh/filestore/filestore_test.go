package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/jrsteele09/go-admin-client/token/refresh/filestore"
	"github.com/stretchr/testify/require"
)

func credentialPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "adminctl", "credentials.json")
}

func TestMissingFileIsEmpty(t *testing.T) {
	s := filestore.New(credentialPath(t))

	v, ok, err := s.Get(context.Background(), refresh.CredentialKey)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)

	require.NoError(t, s.Remove(context.Background(), refresh.CredentialKey))
}

func TestSetGetRemove(t *testing.T) {
	ctx := context.Background()
	path := credentialPath(t)
	s := filestore.New(path)

	require.NoError(t, s.Set(ctx, refresh.CredentialKey, "old-token"))
	require.NoError(t, s.Set(ctx, refresh.CredentialKey, "new-token"))

	// A second store on the same path sees the persisted value.
	v, ok, err := filestore.New(path).Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new-token", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Remove(ctx, refresh.CredentialKey))
	_, ok, err = s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEncryptedValuesAreNotStoredInClear(t *testing.T) {
	ctx := context.Background()
	path := credentialPath(t)
	key, err := filestore.GenerateKey()
	require.NoError(t, err)

	s := filestore.New(path, filestore.WithKey(key))
	require.NoError(t, s.Set(ctx, refresh.CredentialKey, "secret-refresh-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "secret-refresh-token"))

	v, ok, err := s.Get(ctx, refresh.CredentialKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "secret-refresh-token", v)
}

func TestWrongKeyFailsToOpen(t *testing.T) {
	ctx := context.Background()
	path := credentialPath(t)
	key, err := filestore.GenerateKey()
	require.NoError(t, err)
	other, err := filestore.GenerateKey()
	require.NoError(t, err)

	require.NoError(t, filestore.New(path, filestore.WithKey(key)).Set(ctx, refresh.CredentialKey, "token"))

	_, _, err = filestore.New(path, filestore.WithKey(other)).Get(ctx, refresh.CredentialKey)
	require.ErrorIs(t, err, apperrors.ErrInvalidStorageKey)
}

func TestParseKey(t *testing.T) {
	key, err := filestore.ParseKey(strings.Repeat("ab", 32))
	require.NoError(t, err)
	require.Equal(t, byte(0xab), key[0])

	_, err = filestore.ParseKey("abcd")
	require.ErrorIs(t, err, apperrors.ErrInvalidStorageKey)

	_, err = filestore.ParseKey("not-hex")
	require.ErrorIs(t, err, apperrors.ErrInvalidStorageKey)
}

func TestCorruptFileIsReported(t *testing.T) {
	path := credentialPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := filestore.New(path).Get(context.Background(), refresh.CredentialKey)
	require.ErrorContains(t, err, "failed to parse credential file")
}
