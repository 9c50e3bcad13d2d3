package config

import (
	"os"
	"path/filepath"
)

const (
	credentialStoreVar = "CREDENTIAL_STORE"
	credentialFileVar  = "CREDENTIAL_FILE"
	credentialKeyVar   = "CREDENTIAL_KEY"
	redisAddrVar       = "REDIS_ADDR"
	redisPrefixVar     = "REDIS_PREFIX"
)

// Credential store kinds
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type StorageConfig interface {
	GetCredentialStore() string
	GetCredentialFile() string
	GetCredentialKey() string
	GetRedisAddr() string
	GetRedisPrefix() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetCredentialStore() string {
	return GetEnv(credentialStoreVar, StoreFile)
}

func (Storage) GetCredentialFile() string {
	if path := os.Getenv(credentialFileVar); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "adminctl", "credentials.json")
}

// GetCredentialKey returns the hex secretbox key; empty stores values unencrypted
func (Storage) GetCredentialKey() string {
	return GetEnv(credentialKeyVar, "")
}

func (Storage) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (Storage) GetRedisPrefix() string {
	return GetEnv(redisPrefixVar, "admin-client:")
}
