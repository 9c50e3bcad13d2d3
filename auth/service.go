package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/apiclient"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/oauth2"
	"github.com/jrsteele09/go-admin-client/sessions"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRefreshPath = "auth/refresh-token"

	loginPath   = "login"
	logoutPath  = "logout"
	profilePath = "profile"
)

var _ refresh.Exchanger = (*Exchanger)(nil)

// Exchanger performs the refresh exchange against the core backend. The
// rotated access cookie lands in the client's jar.
type Exchanger struct {
	client *apiclient.Client
	path   string
}

// NewExchanger creates the platform exchanger. client must not refresh on 401
// itself, or a rejected exchange would wait on the refresh it belongs to.
func NewExchanger(client *apiclient.Client, refreshPath string) (*Exchanger, error) {
	if client == nil {
		return nil, errors.New("[auth NewExchanger] client is required")
	}
	if client.RefreshesTokens() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[auth NewExchanger] client %s must not refresh tokens", client.Name())
	}
	if refreshPath = strings.TrimPrefix(refreshPath, "/"); refreshPath == "" {
		refreshPath = DefaultRefreshPath
	}
	return &Exchanger{client: client, path: refreshPath}, nil
}

// RefreshToken exchanges the stored refresh token for a rotated one
func (e *Exchanger) RefreshToken(ctx context.Context, req oauth2.RefreshRequest) (*oauth2.TokenResponse, error) {
	var resp oauth2.TokenResponse
	if err := e.client.SendJSON(ctx, http.MethodPost, e.path, req, &resp); err != nil {
		return nil, fmt.Errorf("[auth RefreshToken] %w", err)
	}
	return &resp, nil
}

// Service signs the operator in and out of the core backend
type Service struct {
	core     *apiclient.Client
	exchange *apiclient.Client
	store    refresh.Store
	state    *sessions.AppState
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithAppState records the signed-in profile on login/profile and clears it on logout
func WithAppState(state *sessions.AppState) ServiceOption {
	return func(s *Service) {
		s.state = state
	}
}

// NewService creates the auth service. core serves the authenticated routes
// and normally carries the refresh coordinator. Login goes through exchange,
// which must not refresh on 401. Both clients must share a cookie jar.
func NewService(core, exchange *apiclient.Client, store refresh.Store, opts ...ServiceOption) (*Service, error) {
	if core == nil || exchange == nil {
		return nil, errors.New("[auth NewService] core and exchange clients are required")
	}
	if store == nil {
		return nil, errors.New("[auth NewService] credential store is required")
	}
	if exchange.RefreshesTokens() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[auth NewService] exchange client %s must not refresh tokens", exchange.Name())
	}

	s := &Service{
		core:     core,
		exchange: exchange,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login posts the credentials and keeps the issued refresh token. The access
// cookie lands in the shared jar.
func (s *Service) Login(ctx context.Context, email, password string) (*adminmodel.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[auth Login] email and password are required")
	}

	var resp adminmodel.LoginResponse
	req := adminmodel.LoginRequest{Email: email, Password: password}
	if err := s.exchange.SendJSON(ctx, http.MethodPost, loginPath, req, &resp); err != nil {
		return nil, fmt.Errorf("[auth Login] %w", err)
	}
	if resp.RefreshToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRefreshToken, "[auth Login] no refresh token issued")
	}
	if err := s.store.Set(ctx, refresh.CredentialKey, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("[auth Login] failed to store refresh token: %w", err)
	}

	log.Info().Str("email", resp.User.Email).Msg("Signed in")
	return &resp, nil
}

// Profile loads the signed-in user and their menu
func (s *Service) Profile(ctx context.Context) (*adminmodel.Profile, error) {
	var envelope adminmodel.Envelope[adminmodel.Profile]
	if err := s.core.GetJSON(ctx, profilePath, nil, &envelope); err != nil {
		return nil, fmt.Errorf("[auth Profile] %w", err)
	}
	if s.state != nil {
		s.state.SetProfile(&envelope.Data)
	}
	return &envelope.Data, nil
}

// Logout ends the session on the backend. Local state is dropped even when
// the backend call fails.
func (s *Service) Logout(ctx context.Context) error {
	backendErr := s.core.SendJSON(ctx, http.MethodPost, logoutPath, nil, nil)
	if backendErr != nil {
		log.Err(backendErr).Msg("Backend logout failed, clearing local session anyway")
	}

	if s.state != nil {
		s.state.ClearProfile()
	}
	if err := s.store.Remove(ctx, refresh.CredentialKey); err != nil {
		return fmt.Errorf("[auth Logout] failed to remove refresh token: %w", err)
	}
	if backendErr != nil {
		return fmt.Errorf("[auth Logout] %w", backendErr)
	}
	return nil
}
