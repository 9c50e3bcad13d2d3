package config

import "time"

const (
	coreURLVar        = "BACKEND_URL"
	settingURLVar     = "BACKEND_URL_SETTING"
	financeURLVar     = "BACKEND_URL_FINANCE"
	refreshPathVar    = "REFRESH_PATH"
	requestTimeoutVar = "REQUEST_TIMEOUT"
	maxAuthRetriesVar = "MAX_AUTH_RETRIES"
)

// BackendConfig locates the three platform backends. Each client appends /api
// to its base URL.
type BackendConfig interface {
	GetCoreURL() string
	GetSettingURL() string
	GetFinanceURL() string
	GetRefreshPath() string
	GetRequestTimeout() time.Duration
	GetMaxAuthRetries() int
}

type Backends struct{}

var _ BackendConfig = Backends{}

func (Backends) GetCoreURL() string {
	return GetEnv(coreURLVar, "http://localhost:8000")
}

// GetSettingURL defaults to the core backend, which hosts settings in
// single-backend deployments.
func (b Backends) GetSettingURL() string {
	return GetEnv(settingURLVar, b.GetCoreURL())
}

func (Backends) GetFinanceURL() string {
	return GetEnv(financeURLVar, "http://localhost:8001")
}

func (Backends) GetRefreshPath() string {
	return GetEnv(refreshPathVar, "auth/refresh-token")
}

func (Backends) GetRequestTimeout() time.Duration {
	return GetEnvDuration(requestTimeoutVar, 30*time.Second)
}

func (Backends) GetMaxAuthRetries() int {
	return GetEnvInt(maxAuthRetriesVar, 3)
}
