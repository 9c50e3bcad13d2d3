package config

type Config interface {
	EnvConfig
	BackendConfig
	StorageConfig
	OAuthConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Backends
	Storage
	OAuth
}

func New() Config {
	return mainConfig{}
}
