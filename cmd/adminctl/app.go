package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jrsteele09/go-admin-client/apiclient"
	"github.com/jrsteele09/go-admin-client/auth"
	"github.com/jrsteele09/go-admin-client/internal/config"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/internal/metrics"
	"github.com/jrsteele09/go-admin-client/services/finance"
	"github.com/jrsteele09/go-admin-client/services/setting"
	"github.com/jrsteele09/go-admin-client/sessions"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/jrsteele09/go-admin-client/token/refresh/filestore"
	"github.com/jrsteele09/go-admin-client/token/refresh/memstore"
	"github.com/jrsteele09/go-admin-client/token/refresh/redisstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

// app wires one CLI invocation: a credential store, the refresh coordinator
// and the three backend clients sharing it.
type app struct {
	store       refresh.Store
	closeStore  func() error
	state       *sessions.AppState
	registry    *prometheus.Registry
	recorder    *metrics.Recorder
	coordinator *refresh.Coordinator

	core    *apiclient.Client
	auth    *auth.Service
	setting *setting.Service
	finance *finance.Service
}

func newApp(ctx context.Context, cfg config.Config, stderr io.Writer) (*app, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return newAppWithStore(ctx, cfg, stderr, store, closeStore)
}

// newAppWithStore wires everything around an opened store. The store is
// closed again when wiring fails.
func newAppWithStore(ctx context.Context, cfg config.Config, stderr io.Writer, store refresh.Store, closeStore func() error) (*app, error) {
	a := &app{
		store:      store,
		closeStore: closeStore,
		state:      sessions.New(),
		registry:   prometheus.NewRegistry(),
	}
	if err := a.wire(ctx, cfg, stderr); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	store := a.store
	a.recorder = metrics.New(a.registry)

	jar, err := apiclient.NewCookieJar()
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	hc, err := apiclient.NewHTTPClient(cfg.GetRequestTimeout(), jar)
	if err != nil {
		return err
	}

	exchangeClient, err := apiclient.New("auth", cfg.GetCoreURL(),
		apiclient.WithHTTPClient(hc),
		apiclient.WithMetrics(a.recorder),
	)
	if err != nil {
		return err
	}
	exchanger, err := newExchanger(ctx, cfg, exchangeClient)
	if err != nil {
		return err
	}
	a.coordinator = refresh.NewCoordinator(exchanger, store, refresh.WithObserver(a.recorder))

	shared := []apiclient.Option{
		apiclient.WithHTTPClient(hc),
		apiclient.WithCoordinator(a.coordinator),
		apiclient.WithCredentialStore(store),
		apiclient.WithSession(a.state),
		apiclient.WithMaxAuthRetries(cfg.GetMaxAuthRetries()),
		apiclient.WithMetrics(a.recorder),
		apiclient.WithNotifier(apiclient.NotifierFunc(func(_ context.Context, message string) {
			fmt.Fprintf(stderr, "Oops... %s\n", message)
		})),
		apiclient.WithOnLogout(func(_ context.Context, err error) {
			fmt.Fprintf(stderr, "Session ended (%v), sign in again\n", err)
		}),
	}

	if a.core, err = apiclient.New("core", cfg.GetCoreURL(), shared...); err != nil {
		return err
	}
	settingClient, err := apiclient.New("setting", cfg.GetSettingURL(), shared...)
	if err != nil {
		return err
	}
	financeClient, err := apiclient.New("finance", cfg.GetFinanceURL(), shared...)
	if err != nil {
		return err
	}

	a.auth, err = auth.NewService(a.core, exchangeClient, store, auth.WithAppState(a.state))
	if err != nil {
		return err
	}
	a.setting = setting.New(settingClient, a.state)
	a.finance = finance.New(financeClient)
	return nil
}

func (a *app) Close() {
	if a.closeStore == nil {
		return
	}
	if err := a.closeStore(); err != nil {
		log.Err(err).Msg("Failed to close credential store")
	}
}

func openStore(cfg config.StorageConfig) (refresh.Store, func() error, error) {
	switch kind := cfg.GetCredentialStore(); kind {
	case config.StoreMemory:
		return memstore.New(), nil, nil

	case config.StoreFile:
		var opts []filestore.Option
		if hexKey := cfg.GetCredentialKey(); hexKey != "" {
			key, err := filestore.ParseKey(hexKey)
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, filestore.WithKey(key))
		}
		return filestore.New(cfg.GetCredentialFile(), opts...), nil, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
		return redisstore.New(client, cfg.GetRedisPrefix(), 0), client.Close, nil

	default:
		return nil, nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "unknown credential store %q", kind)
	}
}

// newExchanger picks the refresh exchange: OIDC discovery, a plain OAuth2
// token endpoint, or the platform refresh route.
func newExchanger(ctx context.Context, cfg config.Config, client *apiclient.Client) (refresh.Exchanger, error) {
	if issuer := cfg.GetOAuthIssuer(); issuer != "" {
		return auth.NewOIDCExchanger(ctx, issuer, cfg.GetOAuthClientID(), cfg.GetOAuthClientSecret())
	}
	if tokenURL := cfg.GetOAuthTokenURL(); tokenURL != "" {
		return auth.NewOAuth2Exchanger(&xoauth2.Config{
			ClientID:     cfg.GetOAuthClientID(),
			ClientSecret: cfg.GetOAuthClientSecret(),
			Endpoint:     xoauth2.Endpoint{TokenURL: tokenURL},
		})
	}
	return auth.NewExchanger(client, cfg.GetRefreshPath())
}
