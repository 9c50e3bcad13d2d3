// Package fakebackend runs an in-process stand-in for the platform backends.
// It issues rotating refresh tokens and short-lived access cookies the way the
// real core backend does, and serves a handful of setting and finance routes
// behind the access check. Tests use it to drive the clients end to end.
package fakebackend

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/rs/zerolog/log"
)

const (
	// AccessCookie is the cookie carrying the access credential
	AccessCookie = "access_token"

	// Credentials accepted by the login route
	Email    = "admin@tes.com"
	Password = "password123"
)

type Backend struct {
	server *httptest.Server
	mux    *http.ServeMux
	routes []string

	lock         sync.Mutex
	generation   int
	refreshToken string
	accessToken  string
	refreshCalls int
	refreshGate  chan struct{}
	hits         map[string]int

	coreSetting adminmodel.CoreSetting
	configKeys  adminmodel.ConfigKeys
	balance     float64
	history     []adminmodel.CashBalanceHistoryItem
}

// Start launches the backend on a random local port
func Start() *Backend {
	b := &Backend{
		mux:  http.NewServeMux(),
		hits: make(map[string]int),
		coreSetting: adminmodel.CoreSetting{
			ID:             1,
			Name:           "Dojo Kenshin",
			Description:    "Martial arts club",
			Address:        "Jl. Merdeka 1",
			PrimaryColor:   "#007bff",
			SecondaryColor: "#6c757d",
		},
		configKeys: adminmodel.ConfigKeys{
			TinyMCE: adminmodel.EditorKey{APIKey: "tinymce-key", IsConfigured: true},
		},
		balance: 1500,
	}
	b.initRoutes()
	b.server = httptest.NewServer(b)
	return b
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mux.ServeHTTP(w, r)
}

func (b *Backend) Close() {
	b.server.Close()
}

// URL is the backend root; clients append /api themselves
func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	b.routes = append(b.routes, pattern)
	b.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered route patterns
func (b *Backend) Routes() []string {
	return append([]string(nil), b.routes...)
}

// IssueRefreshToken simulates a completed login on another device: a valid
// refresh token exists but no access cookie has been handed out yet
func (b *Backend) IssueRefreshToken() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.rotateLocked()
	b.accessToken = ""
	return b.refreshToken
}

// ExpireAccess invalidates the current access cookie so the next protected
// request gets a 401
func (b *Backend) ExpireAccess() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.accessToken = ""
}

// RevokeRefresh invalidates the refresh token; the next exchange fails
func (b *Backend) RevokeRefresh() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.refreshToken = ""
}

// HoldRefresh makes the refresh route block until the returned function is called
func (b *Backend) HoldRefresh() (release func()) {
	gate := make(chan struct{})
	b.lock.Lock()
	b.refreshGate = gate
	b.lock.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

func (b *Backend) RefreshCalls() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.refreshCalls
}

// RefreshToken is the refresh token the backend currently accepts
func (b *Backend) RefreshToken() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.refreshToken
}

// Hits returns how often a route pattern was served
func (b *Backend) Hits(pattern string) int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.hits[pattern]
}

func (b *Backend) Balance() float64 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.balance
}

func (b *Backend) rotateLocked() {
	b.generation++
	b.refreshToken = fmt.Sprintf("refresh-%d", b.generation)
	b.accessToken = fmt.Sprintf("access-%d", b.generation)
}

func (b *Backend) setAccessCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

func (b *Backend) count(pattern string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.hits[pattern]++
}

func (b *Backend) logRoutes() {
	for _, route := range b.routes {
		log.Debug().Str("route", route).Msg("fakebackend route")
	}
}
