package auth

import (
	"context"
	"time"

	perr "rolegate/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// Revocations records token ids that must no longer authenticate
type Revocations interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

// NopRevocations never revokes; used when redis is disabled
type NopRevocations struct{}

// Revoke is a no-op
func (NopRevocations) Revoke(context.Context, string, time.Time) error { return nil }

// Revoked always reports false
func (NopRevocations) Revoked(context.Context, string) (bool, error) { return false, nil }

// RedisRevocations keeps revoked jtis as expiring keys
type RedisRevocations struct {
	c      *redis.Client
	prefix string
}

// NewRedisRevocations returns a revocation list backed by c
func NewRedisRevocations(c *redis.Client, prefix string) *RedisRevocations {
	if prefix == "" {
		prefix = "rolegate:revoked:"
	}
	return &RedisRevocations{c: c, prefix: prefix}
}

// Revoke stores jti until the token's own expiry; already expired tokens are skipped
func (r *RedisRevocations) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(now())
	if ttl <= 0 {
		return nil
	}
	if err := r.c.Set(ctx, r.prefix+jti, "1", ttl).Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "revocation list unavailable")
	}
	return nil
}

// Revoked reports whether jti is on the list
func (r *RedisRevocations) Revoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.c.Exists(ctx, r.prefix+jti).Result()
	if err != nil {
		return false, perr.Wrap(err, perr.ErrorCodeUnavailable, "revocation list unavailable")
	}
	return n > 0, nil
}
