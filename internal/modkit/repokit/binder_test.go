package repokit

import (
	"context"
	"testing"

	"rolegate/internal/platform/store"
)

type fakeQ struct{ name string }

func (f *fakeQ) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row             { return nil }

var _ Queryer = (*fakeQ)(nil)

// codeRepo stands in for a domain repo bound to one querier
type codeRepo struct{ q Queryer }

func TestBindFunc_BindsPerQuerier(t *testing.T) {
	t.Parallel()
	var b Binder[codeRepo] = BindFunc[codeRepo](func(q Queryer) codeRepo {
		return codeRepo{q: RequireQueryer(q)}
	})

	pool, tx := &fakeQ{name: "pool"}, &fakeQ{name: "tx"}
	if got := b.Bind(pool).q.(*fakeQ).name; got != "pool" {
		t.Fatalf("bound to %q", got)
	}
	if got := b.Bind(tx).q.(*fakeQ).name; got != "tx" {
		t.Fatalf("bound to %q", got)
	}
}

func TestRequireQueryer(t *testing.T) {
	t.Parallel()
	in := &fakeQ{}
	if RequireQueryer(in) != Queryer(in) {
		t.Fatalf("RequireQueryer should return its argument")
	}
	if msg := panicText(func() { _ = RequireQueryer(nil) }); msg != "repokit: nil Queryer" {
		t.Fatalf("panic = %q", msg)
	}
}
