package rds

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpen_PingAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Open(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("empty addr should fail")
	}

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := Open(context.Background(), Config{Addr: addr}); err == nil {
		t.Fatalf("closed server should fail ping")
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if c.Ping(context.Background()) == nil {
		t.Fatalf("nil client ping should fail")
	}
	if c.Close() != nil {
		t.Fatalf("nil client close should be a no-op")
	}
}
