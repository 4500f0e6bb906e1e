// Package auth resolves bearer tokens into typed principals and mints them for local use
package auth

import (
	"time"

	"rolegate/internal/platform/config"
)

// Config holds token verification settings
type Config struct {
	Secret           string
	Issuer           string
	TTL              time.Duration
	Leeway           time.Duration
	RevocationPrefix string
}

const (
	defaultIssuer = "rolegate"
	defaultTTL    = 24 * time.Hour
	defaultLeeway = 30 * time.Second
	minSecretLen  = 16
)

// ConfigFrom reads AUTH_JWT_* keys from the given view (expected prefix AUTH_)
func ConfigFrom(c config.Conf) Config {
	secret := c.MustString("JWT_SECRET")
	if len(secret) < minSecretLen {
		panic("AUTH_JWT_SECRET must be at least 16 bytes")
	}
	return Config{
		Secret:           secret,
		Issuer:           c.MayString("JWT_ISSUER", defaultIssuer),
		TTL:              c.MayDuration("JWT_TTL", defaultTTL),
		Leeway:           c.MayDuration("JWT_LEEWAY", defaultLeeway),
		RevocationPrefix: c.MayString("REVOCATION_PREFIX", "rolegate:revoked:"),
	}
}

func (c Config) withDefaults() Config {
	if c.Issuer == "" {
		c.Issuer = defaultIssuer
	}
	if c.TTL <= 0 {
		c.TTL = defaultTTL
	}
	if c.Leeway < 0 {
		c.Leeway = 0
	}
	if c.RevocationPrefix == "" {
		c.RevocationPrefix = "rolegate:revoked:"
	}
	return c
}
