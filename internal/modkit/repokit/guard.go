package repokit

import (
	"context"
	"fmt"
	"time"
)

type guarder interface {
	Guard(context.Context) error
}

// guardTimeout bounds the boot check when ctx carries no deadline
const guardTimeout = 5 * time.Second

// MustGuard runs st.Guard and panics on any error; meant for process startup
func MustGuard(ctx context.Context, st guarder) {
	if st == nil {
		panic("repokit: nil guard")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
