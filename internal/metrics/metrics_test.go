package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-admin-client/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsRefreshLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.RefreshStarted()
	r.Queued()
	r.Queued()
	r.RefreshFinished(nil)
	r.Drained(2)

	r.RefreshStarted()
	r.RefreshFinished(errors.New("refresh failed"))

	count, err := testutil.GatherAndCount(reg, "admin_client_refresh_exchanges_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	expected := `
# HELP admin_client_refresh_replayed_total Queued requests replayed after a successful exchange.
# TYPE admin_client_refresh_replayed_total counter
admin_client_refresh_replayed_total 2
# HELP admin_client_refresh_queued_total Requests queued behind an in-flight refresh exchange.
# TYPE admin_client_refresh_queued_total counter
admin_client_refresh_queued_total 2
# HELP admin_client_refresh_inflight 1 while a refresh exchange is outstanding.
# TYPE admin_client_refresh_inflight gauge
admin_client_refresh_inflight 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"admin_client_refresh_replayed_total", "admin_client_refresh_queued_total", "admin_client_refresh_inflight"))
}

func TestRecorderCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.ObserveRequest("finance", http.MethodGet, 200, 10*time.Millisecond)
	r.ObserveRequest("finance", http.MethodGet, 401, 5*time.Millisecond)
	r.ObserveAuthFailure("finance", 401)

	count, err := testutil.GatherAndCount(reg, "admin_client_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "admin_client_http_auth_failures_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg).Queued()

	srv := httptest.NewServer(metrics.Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "admin_client_refresh_queued_total 1")
}
