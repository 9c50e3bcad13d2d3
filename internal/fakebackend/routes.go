package fakebackend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/go-admin-client/adminmodel"
	"github.com/jrsteele09/go-admin-client/oauth2"
	"github.com/rs/zerolog/log"
)

const historySize = 25

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

func (b *Backend) initRoutes() {
	for i := 1; i <= historySize; i++ {
		b.history = append(b.history, adminmodel.CashBalanceHistoryItem{
			ID:          i,
			Status:      i%2 == 0,
			Value:       float64(i * 10),
			Description: "Monthly dues",
			CreatedBy:   1,
			CreatedAt:   time.Date(2025, 1, i, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}

	public := []func(http.HandlerFunc) http.HandlerFunc{b.LoggingMiddleware, b.CountMiddleware}
	protected := []func(http.HandlerFunc) http.HandlerFunc{b.LoggingMiddleware, b.CountMiddleware, b.AccessMiddleware}

	b.RegisterRouteFunc("POST /api/login", ChainMiddleware(b.handleLogin, public...))
	b.RegisterRouteFunc("POST /api/auth/refresh-token", ChainMiddleware(b.handleRefresh, public...))
	b.RegisterRouteFunc("GET /api/profile", ChainMiddleware(b.handleProfile, protected...))
	b.RegisterRouteFunc("POST /api/logout", ChainMiddleware(b.handleLogout, protected...))
	b.RegisterRouteFunc("GET /api/setting/core", ChainMiddleware(b.handleCoreSetting, protected...))
	b.RegisterRouteFunc("GET /api/setting/config-key", ChainMiddleware(b.handleConfigKey, protected...))
	b.RegisterRouteFunc("GET /api/finance/cash-balance", ChainMiddleware(b.handleGetBalance, protected...))
	b.RegisterRouteFunc("PUT /api/finance/cash-balance", ChainMiddleware(b.handleUpdateBalance, protected...))
	b.RegisterRouteFunc("GET /api/finance/cash-balance/history", ChainMiddleware(b.handleHistory, protected...))
	b.RegisterRouteFunc("GET /api/forbidden", ChainMiddleware(b.statusHandler(http.StatusForbidden, "Permission denied"), protected...))
	b.RegisterRouteFunc("GET /api/throttled", ChainMiddleware(b.statusHandler(http.StatusTooManyRequests, "Too many requests"), protected...))
	b.RegisterRouteFunc("GET /api/always-unauthorized", ChainMiddleware(b.statusHandler(http.StatusUnauthorized, "Unauthenticated"), public...))

	b.logRoutes()
}

func (b *Backend) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("request_id", r.Header.Get("X-Request-ID")).Msg("fakebackend")
		next(w, r)
	}
}

func (b *Backend) CountMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.count(r.Pattern)
		next(w, r)
	}
}

// AccessMiddleware rejects requests without the current access cookie
func (b *Backend) AccessMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AccessCookie)
		b.lock.Lock()
		valid := err == nil && b.accessToken != "" && cookie.Value == b.accessToken
		b.lock.Unlock()
		if !valid {
			writeJSON(w, http.StatusUnauthorized, adminmodel.ErrorBody{Message: "Unauthenticated"})
			return
		}
		next(w, r)
	}
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req adminmodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email != Email || req.Password != Password {
		writeJSON(w, http.StatusBadRequest, adminmodel.ErrorBody{Errors: []any{"Email or password is incorrect!"}})
		return
	}

	b.lock.Lock()
	b.rotateLocked()
	refreshToken, accessToken := b.refreshToken, b.accessToken
	b.lock.Unlock()

	b.setAccessCookie(w, accessToken)
	writeJSON(w, http.StatusOK, adminmodel.LoginResponse{
		Message:      "Login successful",
		RefreshToken: refreshToken,
		User:         adminUser(),
	})
}

func (b *Backend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req oauth2.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, adminmodel.ErrorBody{Errors: []any{"refresh_token is required"}})
		return
	}

	b.lock.Lock()
	b.refreshCalls++
	gate := b.refreshGate
	b.lock.Unlock()
	if gate != nil {
		<-gate
	}

	b.lock.Lock()
	if req.RefreshToken == "" || req.RefreshToken != b.refreshToken {
		b.lock.Unlock()
		writeJSON(w, http.StatusUnauthorized, adminmodel.ErrorBody{Message: "Invalid refresh token"})
		return
	}
	b.rotateLocked()
	refreshToken, accessToken := b.refreshToken, b.accessToken
	b.lock.Unlock()

	b.setAccessCookie(w, accessToken)
	writeJSON(w, http.StatusOK, oauth2.TokenResponse{RefreshToken: &refreshToken})
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adminmodel.Envelope[adminmodel.Profile]{
		Success: true,
		Data: adminmodel.Profile{
			Profile: adminUser(),
			Menu: []adminmodel.MenuItem{
				{ID: 1, Name: "Dashboard", Icon: "mdi-view-dashboard", URL: "/dashboard", Children: []adminmodel.MenuItem{}},
			},
		},
	})
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request) {
	b.lock.Lock()
	b.refreshToken = ""
	b.accessToken = ""
	b.lock.Unlock()

	writeJSON(w, http.StatusOK, adminmodel.ErrorBody{Message: "Logout successful"})
}

func (b *Backend) handleCoreSetting(w http.ResponseWriter, r *http.Request) {
	b.lock.Lock()
	setting := b.coreSetting
	b.lock.Unlock()
	writeJSON(w, http.StatusOK, adminmodel.Envelope[adminmodel.CoreSetting]{Success: true, Data: setting})
}

func (b *Backend) handleConfigKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adminmodel.Envelope[adminmodel.ConfigKeys]{
		Success: true,
		Message: "Config keys retrieved successfully",
		Data:    b.configKeys,
	})
}

func (b *Backend) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, adminmodel.Envelope[adminmodel.CashBalance]{
		Success: true,
		Message: "Cash balance retrieved successfully",
		Data:    adminmodel.CashBalance{Balance: b.Balance()},
	})
}

func (b *Backend) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req adminmodel.UpdateCashBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, adminmodel.ErrorBody{Errors: []any{"Invalid payload"}})
		return
	}
	if req.Description == "" {
		writeJSON(w, http.StatusBadRequest, adminmodel.ErrorBody{Errors: []any{"Description is required"}})
		return
	}
	if req.Value <= 0 {
		writeJSON(w, http.StatusBadRequest, adminmodel.ErrorBody{Errors: []any{"Value must be greater than 0"}})
		return
	}

	b.lock.Lock()
	if req.Status {
		b.balance += req.Value
	} else {
		b.balance -= req.Value
	}
	b.history = append(b.history, adminmodel.CashBalanceHistoryItem{
		ID:          len(b.history) + 1,
		Status:      req.Status,
		Value:       req.Value,
		Description: req.Description,
		CreatedBy:   1,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	balance := b.balance
	b.lock.Unlock()

	writeJSON(w, http.StatusOK, adminmodel.Envelope[adminmodel.CashBalance]{
		Success: true,
		Message: "Cash balance updated successfully",
		Data:    adminmodel.CashBalance{Balance: balance},
	})
}

func (b *Backend) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = adminmodel.DefaultHistoryLimit
	}
	cursor, _ := strconv.Atoi(r.URL.Query().Get("cursor"))

	b.lock.Lock()
	page := adminmodel.CashBalanceHistory{Items: []adminmodel.CashBalanceHistoryItem{}}
	for _, item := range b.history {
		if item.ID <= cursor {
			continue
		}
		if len(page.Items) == limit {
			page.HasMore = true
			break
		}
		page.Items = append(page.Items, item)
	}
	b.lock.Unlock()

	if page.HasMore {
		next := page.Items[len(page.Items)-1].ID
		page.NextCursor = &next
	}
	writeJSON(w, http.StatusOK, adminmodel.Envelope[adminmodel.CashBalanceHistory]{Success: true, Data: page})
}

func (b *Backend) statusHandler(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, adminmodel.ErrorBody{Message: message})
	}
}

func adminUser() adminmodel.User {
	return adminmodel.User{
		ID:     1,
		Email:  Email,
		Name:   "Admin",
		Gender: "Male",
		Active: "Active",
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("fakebackend: failed to encode response")
	}
}
