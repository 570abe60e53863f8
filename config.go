package session

import "time"

const (
	defaultAuthTimeout      = 30 * time.Second
	defaultPublicTimeout    = 15 * time.Second
	defaultRefreshSkew      = 30 * time.Second
	defaultStorageNamespace = "ventassaas"
)

// BasicConfig is a plain-struct Config implementation with sensible
// defaults. The public channel (login/refresh/logout) carries a shorter
// timeout than the authenticated channel so auth operations fail fast.
type BasicConfig struct {
	BaseURL          string
	AuthTimeout      time.Duration
	PublicTimeout    time.Duration
	RefreshSkew      time.Duration
	StorageNamespace string
}

var _ Config = BasicConfig{}

func (c BasicConfig) GetBaseURL() string {
	return c.BaseURL
}

func (c BasicConfig) GetAuthTimeout() time.Duration {
	if c.AuthTimeout > 0 {
		return c.AuthTimeout
	}
	return defaultAuthTimeout
}

func (c BasicConfig) GetPublicTimeout() time.Duration {
	if c.PublicTimeout > 0 {
		return c.PublicTimeout
	}
	return defaultPublicTimeout
}

func (c BasicConfig) GetRefreshSkew() time.Duration {
	if c.RefreshSkew > 0 {
		return c.RefreshSkew
	}
	return defaultRefreshSkew
}

func (c BasicConfig) GetStorageNamespace() string {
	if c.StorageNamespace != "" {
		return c.StorageNamespace
	}
	return defaultStorageNamespace
}
