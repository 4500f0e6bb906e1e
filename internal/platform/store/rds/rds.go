// Package rds provides a thin go-redis client used for short lived shared state
package rds

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures redis connectivity
type Config struct {
	Addr     string
	Password string
	DB       int

	// DialTimeout defaults to 3s
	DialTimeout time.Duration
}

// Client wraps a go-redis client
type Client struct {
	R *redis.Client
}

var newClient = redis.NewClient

// Open creates a client and verifies it answers PING
func Open(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	dt := cfg.DialTimeout
	if dt <= 0 {
		dt = 3 * time.Second
	}
	r := newClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dt,
	})
	c := &Client{R: r}
	if err := c.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, err
	}
	return c, nil
}

// Ping reports readiness
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.R == nil {
		return errors.New("rds: nil client")
	}
	return c.R.Ping(ctx).Err()
}

// Close releases the connection pool
func (c *Client) Close() error {
	if c == nil || c.R == nil {
		return nil
	}
	return c.R.Close()
}
