package repokit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeGuard struct {
	err error
	ctx context.Context
}

func (f *fakeGuard) Guard(ctx context.Context) error {
	f.ctx = ctx
	return f.err
}

func panicText(fn func()) (msg string) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case error:
			msg = r.Error()
		case string:
			msg = r
		}
	}()
	fn()
	return ""
}

func TestMustGuard(t *testing.T) {
	t.Parallel()

	ok := &fakeGuard{}
	start := time.Now()
	if msg := panicText(func() { MustGuard(context.Background(), ok) }); msg != "" {
		t.Fatalf("healthy store panicked: %s", msg)
	}
	dl, has := ok.ctx.Deadline()
	if !has || dl.Sub(start) > guardTimeout+time.Second {
		t.Fatalf("default deadline missing or too long: %v %v", dl, has)
	}

	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	MustGuard(parent, ok)
	want, _ := parent.Deadline()
	if got, _ := ok.ctx.Deadline(); !got.Equal(want) {
		t.Fatalf("caller deadline should win: got %v want %v", got, want)
	}

	down := &fakeGuard{err: errors.Join(errors.New("pg: refused"), errors.New("redis: timeout"))}
	msg := panicText(func() { MustGuard(context.Background(), down) })
	if !strings.Contains(msg, "dependency guard failed") || !strings.Contains(msg, "redis: timeout") {
		t.Fatalf("panic = %q", msg)
	}

	if msg := panicText(func() { MustGuard(context.Background(), nil) }); msg != "repokit: nil guard" {
		t.Fatalf("nil guard panic = %q", msg)
	}
}
