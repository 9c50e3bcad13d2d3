package setting_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-admin-client/apiclient"
	"github.com/jrsteele09/go-admin-client/auth"
	"github.com/jrsteele09/go-admin-client/internal/fakebackend"
	"github.com/jrsteele09/go-admin-client/services/setting"
	"github.com/jrsteele09/go-admin-client/sessions"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/jrsteele09/go-admin-client/token/refresh/memstore"
	"github.com/stretchr/testify/require"
)

func newSettingService(t *testing.T, state *sessions.AppState) (*setting.Service, *fakebackend.Backend) {
	t.Helper()
	b := fakebackend.Start()
	t.Cleanup(b.Close)

	jar, err := apiclient.NewCookieJar()
	require.NoError(t, err)
	exchangeClient, err := apiclient.New("auth", b.URL(), apiclient.WithCookieJar(jar))
	require.NoError(t, err)
	exchanger, err := auth.NewExchanger(exchangeClient, auth.DefaultRefreshPath)
	require.NoError(t, err)

	store := memstore.NewWithCredential(b.IssueRefreshToken())
	client, err := apiclient.New("setting", b.URL(),
		apiclient.WithCookieJar(jar),
		apiclient.WithCoordinator(refresh.NewCoordinator(exchanger, store)),
	)
	require.NoError(t, err)
	return setting.New(client, state), b
}

func TestGetCoreSetting(t *testing.T) {
	state := sessions.New()
	svc, b := newSettingService(t, state)

	core, err := svc.GetCoreSetting(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Dojo Kenshin", core.Name)
	require.Equal(t, "#007bff", core.PrimaryColor)
	require.Equal(t, core, state.CoreSetting())
	require.Equal(t, 1, b.RefreshCalls())
}

func TestGetConfigKeys(t *testing.T) {
	svc, _ := newSettingService(t, nil)

	keys, err := svc.GetConfigKeys(context.Background())
	require.NoError(t, err)
	require.True(t, keys.TinyMCE.IsConfigured)
	require.Equal(t, "tinymce-key", keys.TinyMCE.APIKey)
}
