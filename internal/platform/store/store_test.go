package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rolegate/internal/platform/store/rds"

	"github.com/alicebob/miniredis/v2"
)

func TestGuard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatalf("nil store should return error")
	}
	if err := (&Store{}).Guard(ctx); err != nil {
		t.Fatalf("empty store should pass, got %v", err)
	}

	ok := &Store{PG: &fakeTxRunner{}}
	if err := ok.Guard(ctx); err != nil {
		t.Fatalf("healthy pg should pass, got %v", err)
	}

	bad := &Store{PG: &fakeTxRunner{pingErr: errors.New("refused")}}
	err := bad.Guard(ctx)
	if err == nil || !strings.Contains(err.Error(), "pg: refused") {
		t.Fatalf("expected pg error, got %v", err)
	}
}

func TestGuard_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := rds.Open(context.Background(), rds.Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("rds.Open: %v", err)
	}
	s := &Store{RDS: c}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("redis up should pass, got %v", err)
	}

	mr.Close()
	err = s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "redis:") {
		t.Fatalf("expected redis error, got %v", err)
	}
	_ = s.Close(context.Background())
}

type closingTx struct {
	fakeTxRunner
	closed bool
	err    error
}

func (c *closingTx) Close() error { c.closed = true; return c.err }

func TestClose(t *testing.T) {
	t.Parallel()

	ct := &closingTx{err: errors.New("close failed")}
	s := &Store{PG: ct}
	if err := s.Close(context.Background()); err == nil || !ct.closed {
		t.Fatalf("close error should surface, closed=%v err=%v", ct.closed, err)
	}
	if err := (&Store{}).Close(context.Background()); err != nil {
		t.Fatalf("empty close should be nil, got %v", err)
	}
}

func TestRunInTenant_PublishesSetting(t *testing.T) {
	t.Parallel()

	tx := &fakeTxRunner{}
	var seen string
	err := RunInTenant(context.Background(), tx, "org-1", func(ctx context.Context, q RowQuerier) error {
		seen, _ = TenantID(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTenant: %v", err)
	}
	if seen != "org-1" || tx.txCalls != 1 {
		t.Fatalf("tenant not on ctx or no tx: %q %d", seen, tx.txCalls)
	}
	if len(tx.sqls) != 1 || !strings.Contains(tx.sqls[0], "set_config") || tx.args[0][1] != "org-1" {
		t.Fatalf("set_config not issued: %v %v", tx.sqls, tx.args)
	}
}

func TestRunInTenant_SettingFailureAborts(t *testing.T) {
	t.Parallel()

	tx := &fakeTxRunner{fakeRowQuerier: fakeRowQuerier{execErr: errors.New("denied")}}
	called := false
	err := RunInTenant(context.Background(), tx, "org-1", func(context.Context, RowQuerier) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("fn must not run when the setting fails, err=%v called=%v", err, called)
	}
}

func TestTenantID_Missing(t *testing.T) {
	t.Parallel()
	if _, ok := TenantID(context.Background()); ok {
		t.Fatalf("expected no tenant")
	}
}
