package repokit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"rolegate/internal/platform/store"
)

type call struct {
	op   string
	sql  string
	args []any
}

// recorder is both the tx bound Queryer and the runner that hands it out
type recorder struct {
	calls []call
	txs   int
	ping  error
}

func (r *recorder) log(op, sql string, args []any) {
	r.calls = append(r.calls, call{op: op, sql: sql, args: append([]any(nil), args...)})
}

func (r *recorder) Tx(_ context.Context, fn func(q Queryer) error) error {
	r.txs++
	return fn(r)
}

func (r *recorder) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r.log("exec", sql, args)
	return nil, nil
}

func (r *recorder) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	r.log("query", sql, args)
	return nil, nil
}

func (r *recorder) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	r.log("row", sql, args)
	return nil
}

type pingingRecorder struct{ recorder }

func (p *pingingRecorder) Ping(context.Context) error { return p.ping }

func TestWithBeginHooks_SettingsPrecedeWork(t *testing.T) {
	t.Parallel()
	inner := &recorder{}
	runner := WithBeginHooks(inner,
		LocalSetting("lock_timeout", "5s"),
		LocalSetting("statement_timeout", " "),
		LocalSetting("app.tenant_id", "org-7"),
	)

	err := runner.Tx(context.Background(), func(q Queryer) error {
		if q != Queryer(inner) {
			t.Fatalf("fn should receive the tx bound querier")
		}
		_, err := q.Exec(context.Background(), "UPDATE appointments SET status = $1", "completed")
		return err
	})
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}

	want := []call{
		{"exec", "SELECT set_config($1, $2, true)", []any{"lock_timeout", "5s"}},
		{"exec", "SELECT set_config($1, $2, true)", []any{"app.tenant_id", "org-7"}},
		{"exec", "UPDATE appointments SET status = $1", []any{"completed"}},
	}
	if !reflect.DeepEqual(inner.calls, want) {
		t.Fatalf("calls = %+v", inner.calls)
	}
	if inner.txs != 1 {
		t.Fatalf("txs = %d", inner.txs)
	}
}

func TestWithBeginHooks_FailingHookAbortsTx(t *testing.T) {
	t.Parallel()
	denied := errors.New("permission denied to set parameter")
	runner := WithBeginHooks(&recorder{},
		func(context.Context, Queryer) error { return denied },
		func(context.Context, Queryer) error {
			t.Fatalf("later hooks must not run")
			return nil
		},
	)

	ran := false
	err := runner.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, denied) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

func TestWithBeginHooks_PassThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inner := &recorder{}
	r := WithBeginHooks(inner, LocalSetting("lock_timeout", "5s"))

	_, _ = r.Exec(ctx, "DELETE FROM billing_codes WHERE id = $1", "a")
	_, _ = r.Query(ctx, "SELECT id FROM diary_entries WHERE owner_id = $1", "b")
	_ = r.QueryRow(ctx, "SELECT count(*) FROM appointments")

	ops := []string{}
	for _, c := range inner.calls {
		ops = append(ops, c.op)
	}
	if !reflect.DeepEqual(ops, []string{"exec", "query", "row"}) {
		t.Fatalf("outside a tx no hook runs, got %v", ops)
	}
	if inner.calls[0].args[0] != "a" || inner.calls[1].args[0] != "b" {
		t.Fatalf("args not forwarded: %+v", inner.calls)
	}
}

func TestWithBeginHooks_ForwardsPing(t *testing.T) {
	t.Parallel()
	type pinger interface{ Ping(context.Context) error }

	down := errors.New("connection refused")
	h := WithBeginHooks(&pingingRecorder{recorder{ping: down}}).(pinger)
	if err := h.Ping(context.Background()); !errors.Is(err, down) {
		t.Fatalf("Ping = %v", err)
	}
	if err := WithBeginHooks(&recorder{}).(pinger).Ping(context.Background()); err != nil {
		t.Fatalf("inner without Ping should report ready, got %v", err)
	}
}

func TestRunMidHooks_StopsAtFirstRefusal(t *testing.T) {
	t.Parallel()
	var seen []string
	ok := func(name string) MidHook {
		return func(context.Context, Queryer) error { seen = append(seen, name); return nil }
	}
	missing := errors.New("room not found")
	refuse := func(context.Context, Queryer) error { seen = append(seen, "room"); return missing }

	if err := RunMidHooks(context.Background(), &recorder{}, ok("a"), ok("b")); err != nil {
		t.Fatalf("RunMidHooks: %v", err)
	}
	err := RunMidHooks(context.Background(), &recorder{}, ok("c"), refuse, ok("never"))
	if !errors.Is(err, missing) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(seen, []string{"a", "b", "c", "room"}) {
		t.Fatalf("seen = %v", seen)
	}
}
