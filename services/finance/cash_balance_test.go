package finance_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/apiclient"
	"github.com/jrsteele09/go-admin-client/auth"
	apperrors "github.com/jrsteele09/go-admin-client/internal/errors"
	"github.com/jrsteele09/go-admin-client/internal/fakebackend"
	"github.com/jrsteele09/go-admin-client/services/finance"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/jrsteele09/go-admin-client/token/refresh/memstore"
	"github.com/stretchr/testify/require"
)

func newFinanceService(t *testing.T) (*finance.Service, *fakebackend.Backend) {
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
	client, err := apiclient.New("finance", b.URL(),
		apiclient.WithCookieJar(jar),
		apiclient.WithCoordinator(refresh.NewCoordinator(exchanger, store)),
	)
	require.NoError(t, err)
	return finance.New(client), b
}

func TestCashBalance(t *testing.T) {
	svc, b := newFinanceService(t)
	ctx := context.Background()

	balance, err := svc.GetCashBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, 1500.0, balance.Balance)

	balance, err = svc.UpdateCashBalance(ctx, adminmodel.NewCashBalanceUpdate(adminmodel.Credit, 250, "Tournament fees"))
	require.NoError(t, err)
	require.Equal(t, 1750.0, balance.Balance)
	require.Equal(t, 1750.0, b.Balance())
}

func TestUpdateCashBalanceValidation(t *testing.T) {
	svc, b := newFinanceService(t)
	ctx := context.Background()

	_, err := svc.UpdateCashBalance(ctx, adminmodel.NewCashBalanceUpdate(adminmodel.Debit, 0, "Nothing"))
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	require.Equal(t, 0, b.RefreshCalls())

	_, err = svc.UpdateCashBalance(ctx, adminmodel.NewCashBalanceUpdate(adminmodel.Debit, 10, ""))
	require.Equal(t, http.StatusBadRequest, refresh.StatusCode(err))
	require.Equal(t, 1500.0, b.Balance())
}

func TestCashBalanceHistoryPages(t *testing.T) {
	svc, _ := newFinanceService(t)
	ctx := context.Background()

	page, err := svc.GetCashBalanceHistory(ctx, adminmodel.CashBalanceHistoryParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, adminmodel.DefaultHistoryLimit)
	require.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	require.Equal(t, 10, *page.NextCursor)

	var ids []int
	cursor := ""
	for {
		page, err := svc.GetCashBalanceHistory(ctx, adminmodel.CashBalanceHistoryParams{Limit: 7, Cursor: cursor})
		require.NoError(t, err)
		for _, item := range page.Items {
			ids = append(ids, item.ID)
		}
		if !page.HasMore {
			break
		}
		cursor = strconv.Itoa(*page.NextCursor)
	}
	require.Len(t, ids, 25)
	require.Equal(t, 1, ids[0])
	require.Equal(t, 25, ids[24])
}
