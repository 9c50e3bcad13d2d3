package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/oauth2"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	xoauth2 "golang.org/x/oauth2"
)

var _ refresh.Exchanger = (*OAuth2Exchanger)(nil)

// OAuth2Exchanger performs the refresh exchange against a standard OAuth2
// token endpoint (refresh_token grant) instead of the platform backend.
type OAuth2Exchanger struct {
	config     *xoauth2.Config
	httpClient *http.Client
	verifier   *oidc.IDTokenVerifier
	nowTime    func() time.Time
}

// ExchangerOption configures an OAuth2Exchanger
type ExchangerOption func(*OAuth2Exchanger)

// WithExchangeHTTPClient sets the client used to reach the token endpoint
func WithExchangeHTTPClient(hc *http.Client) ExchangerOption {
	return func(e *OAuth2Exchanger) {
		e.httpClient = hc
	}
}

// WithIDTokenVerifier verifies any id_token returned with the rotated tokens
func WithIDTokenVerifier(v *oidc.IDTokenVerifier) ExchangerOption {
	return func(e *OAuth2Exchanger) {
		e.verifier = v
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ExchangerOption {
	return func(e *OAuth2Exchanger) {
		e.nowTime = nowFunc
	}
}

func NewOAuth2Exchanger(config *xoauth2.Config, opts ...ExchangerOption) (*OAuth2Exchanger, error) {
	if config == nil || config.Endpoint.TokenURL == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[auth NewOAuth2Exchanger] token URL is required")
	}
	e := &OAuth2Exchanger{config: config, nowTime: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewOIDCExchanger discovers the token endpoint of issuer and verifies ID
// tokens against its keys.
func NewOIDCExchanger(ctx context.Context, issuer, clientID, clientSecret string, opts ...ExchangerOption) (*OAuth2Exchanger, error) {
	probe := &OAuth2Exchanger{}
	for _, opt := range opts {
		opt(probe)
	}
	if probe.httpClient != nil {
		ctx = oidc.ClientContext(ctx, probe.httpClient)
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	config := &xoauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", oidc.ScopeOfflineAccess},
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return NewOAuth2Exchanger(config, append([]ExchangerOption{WithIDTokenVerifier(verifier)}, opts...)...)
}

func (e *OAuth2Exchanger) RefreshToken(ctx context.Context, req oauth2.RefreshRequest) (*oauth2.TokenResponse, error) {
	if req.RefreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, xoauth2.HTTPClient, e.httpClient)
	}

	tok, err := e.config.TokenSource(ctx, &xoauth2.Token{RefreshToken: req.RefreshToken}).Token()
	if err != nil {
		var retrieveErr *xoauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidRefreshToken, "[auth RefreshToken] %s grant rejected: %s", oauth2.RefreshTokenCodeGrant, retrieveErr.ErrorDescription)
		}
		return nil, fmt.Errorf("[auth RefreshToken] %s grant: %w", oauth2.RefreshTokenCodeGrant, err)
	}

	resp := &oauth2.TokenResponse{
		AccessToken:  &tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: &tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		resp.ExpiresIn = int(tok.Expiry.Sub(e.nowTime()).Seconds())
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		resp.Scope = scope
	}
	if idToken, ok := tok.Extra("id_token").(string); ok && idToken != "" {
		if e.verifier != nil {
			if _, err := e.verifier.Verify(ctx, idToken); err != nil {
				return nil, fmt.Errorf("[auth RefreshToken] failed to verify ID token: %w", err)
			}
		}
		resp.IdToken = &idToken
	}
	return resp, nil
}
