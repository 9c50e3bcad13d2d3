package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-client/auth"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/oauth2"
	"github.com/stretchr/testify/require"
	xoauth2 "golang.org/x/oauth2"
)

type tokenServer struct {
	*httptest.Server
	idToken string
}

func newTokenServer(t *testing.T) *tokenServer {
	ts := &tokenServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 ts.URL,
			"authorization_endpoint": ts.URL + "/authorize",
			"token_endpoint":         ts.URL + "/token",
			"jwks_uri":               ts.URL + "/keys",
		})
	})
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("grant_type") != string(oauth2.RefreshTokenCodeGrant) || r.PostForm.Get("refresh_token") != "r1" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant", "error_description": "refresh token expired"})
			return
		}
		body := map[string]any{
			"access_token":  "a2",
			"token_type":    "Bearer",
			"refresh_token": "r2",
			"expires_in":    900,
			"scope":         "openid profile",
		}
		if ts.idToken != "" {
			body["id_token"] = ts.idToken
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestOAuth2ExchangerRotatesToken(t *testing.T) {
	ts := newTokenServer(t)
	config := &xoauth2.Config{
		ClientID:     "admin",
		ClientSecret: "secret",
		Endpoint:     xoauth2.Endpoint{TokenURL: ts.URL + "/token", AuthStyle: xoauth2.AuthStyleInParams},
	}
	exchanger, err := auth.NewOAuth2Exchanger(config, auth.WithExchangeHTTPClient(ts.Client()))
	require.NoError(t, err)

	resp, err := exchanger.RefreshToken(context.Background(), oauth2.RefreshRequest{RefreshToken: "r1"})
	require.NoError(t, err)
	require.Equal(t, "r2", *resp.RefreshToken)
	require.Equal(t, "a2", *resp.AccessToken)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, "openid profile", resp.Scope)
	require.InDelta(t, 900, resp.ExpiresIn, 5)
	require.Nil(t, resp.IdToken)
}

func TestOAuth2ExchangerInvalidGrant(t *testing.T) {
	ts := newTokenServer(t)
	config := &xoauth2.Config{
		ClientID: "admin",
		Endpoint: xoauth2.Endpoint{TokenURL: ts.URL + "/token", AuthStyle: xoauth2.AuthStyleInParams},
	}
	exchanger, err := auth.NewOAuth2Exchanger(config, auth.WithExchangeHTTPClient(ts.Client()))
	require.NoError(t, err)

	_, err = exchanger.RefreshToken(context.Background(), oauth2.RefreshRequest{RefreshToken: "stale"})
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	require.ErrorContains(t, err, "refresh_token grant rejected: refresh token expired")

	_, err = exchanger.RefreshToken(context.Background(), oauth2.RefreshRequest{})
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestNewOAuth2ExchangerRequiresTokenURL(t *testing.T) {
	_, err := auth.NewOAuth2Exchanger(&xoauth2.Config{ClientID: "admin"})
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestOIDCExchangerDiscoversEndpoint(t *testing.T) {
	ts := newTokenServer(t)
	now := time.Now()

	exchanger, err := auth.NewOIDCExchanger(context.Background(), ts.URL, "admin", "secret",
		auth.WithExchangeHTTPClient(ts.Client()),
		auth.WithNowTime(func() time.Time { return now }),
	)
	require.NoError(t, err)

	resp, err := exchanger.RefreshToken(context.Background(), oauth2.RefreshRequest{RefreshToken: "r1"})
	require.NoError(t, err)
	require.Equal(t, "r2", *resp.RefreshToken)
}

func TestOIDCExchangerVerifiesIDToken(t *testing.T) {
	ts := newTokenServer(t)
	ts.idToken = "not-a-jwt"

	exchanger, err := auth.NewOIDCExchanger(context.Background(), ts.URL, "admin", "secret",
		auth.WithExchangeHTTPClient(ts.Client()),
	)
	require.NoError(t, err)

	_, err = exchanger.RefreshToken(context.Background(), oauth2.RefreshRequest{RefreshToken: "r1"})
	require.ErrorContains(t, err, "failed to verify ID token")
}
