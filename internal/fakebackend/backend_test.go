package fakebackend_test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/internal/fakebackend"
	"github.com/stretchr/testify/require"
)

func newHTTPClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func post(t *testing.T, hc *http.Client, url, body string) *http.Response {
	resp, err := hc.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, hc *http.Client, url string) *http.Response {
	resp, err := hc.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginSetsAccessCookie(t *testing.T) {
	b := fakebackend.Start()
	defer b.Close()
	hc := newHTTPClient(t)

	resp := get(t, hc, b.URL()+"/api/profile")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, hc, b.URL()+"/api/login", `{"email":"admin@tes.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login adminmodel.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.Equal(t, b.RefreshToken(), login.RefreshToken)

	resp = get(t, hc, b.URL()+"/api/profile")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, b.Hits("GET /api/profile"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	b := fakebackend.Start()
	defer b.Close()

	resp := post(t, newHTTPClient(t), b.URL()+"/api/login", `{"email":"admin@tes.com","password":"nope"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body adminmodel.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, []any{"Email or password is incorrect!"}, body.Errors)
}

func TestRefreshRotatesToken(t *testing.T) {
	b := fakebackend.Start()
	defer b.Close()
	hc := newHTTPClient(t)

	old := b.IssueRefreshToken()
	resp := post(t, hc, b.URL()+"/api/auth/refresh-token", `{"refresh_token":"`+old+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEqual(t, old, b.RefreshToken())
	require.Equal(t, 1, b.RefreshCalls())

	resp = get(t, hc, b.URL()+"/api/setting/core")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the rotated-out token is no longer accepted
	resp = post(t, hc, b.URL()+"/api/auth/refresh-token", `{"refresh_token":"`+old+`"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHistoryPaging(t *testing.T) {
	b := fakebackend.Start()
	defer b.Close()
	hc := newHTTPClient(t)
	post(t, hc, b.URL()+"/api/login", `{"email":"admin@tes.com","password":"password123"}`)

	resp := get(t, hc, b.URL()+"/api/finance/cash-balance/history?limit=20&cursor=10")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page adminmodel.Envelope[adminmodel.CashBalanceHistory]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Data.Items, 15)
	require.Equal(t, 11, page.Data.Items[0].ID)
	require.False(t, page.Data.HasMore)
	require.Nil(t, page.Data.NextCursor)
}
