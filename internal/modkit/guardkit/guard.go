// Package guardkit re-validates a write against the stored row before it is applied
// admission and write share one transaction; the row is read FOR UPDATE and the
// write compares updated_at so a concurrent writer surfaces as a conflict
package guardkit

import (
	"context"
	"errors"
	"time"

	"rolegate/internal/modkit/repokit"
	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/platform/store"

	"github.com/google/uuid"
)

// Policy describes how one resource kind is admitted for mutation
type Policy[T any] struct {
	// Resource names the kind in error messages, e.g. "diary entry"
	Resource string

	// Load reads the row by id and should lock it (SELECT ... FOR UPDATE)
	// a missing row is perr.ErrNotFound
	Load func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (T, error)

	// Find reads the row without locking for Read; nil falls back to Load
	Find func(ctx context.Context, q repokit.Queryer, id uuid.UUID) (T, error)

	// Deleted reports a soft deleted row; nil for hard delete tables
	Deleted func(T) bool

	// InScope reports whether the caller may touch the row
	InScope func(scope.Scope, T) bool

	// Terminal reports a locked state; nil when the resource has none
	Terminal func(T) bool

	// UpdatedAt exposes the concurrency token compared against Intent.Expected
	UpdatedAt func(T) time.Time

	// Hide reports out of scope rows as not found rather than forbidden
	Hide bool
}

// Intent is what the caller asks for beyond the target id
type Intent struct {
	// Expected is the updated_at the caller last read, nil to skip the check
	Expected *time.Time

	// Refs validate referenced rows inside the same tx
	Refs []repokit.MidHook
}

// Read loads the target and applies the existence and scope checks only
func (p Policy[T]) Read(ctx context.Context, q repokit.Queryer, sc scope.Scope, id uuid.UUID) (T, error) {
	load := p.Find
	if load == nil {
		load = p.Load
	}
	return p.visible(ctx, q, sc, id, load, "access")
}

// Admit loads the target and runs the checks in order:
// existence, scope, terminal state, concurrency token, references
func (p Policy[T]) Admit(ctx context.Context, q repokit.Queryer, sc scope.Scope, id uuid.UUID, in Intent) (T, error) {
	var zero T
	row, err := p.visible(ctx, q, sc, id, p.Load, "modify")
	if err != nil {
		return zero, err
	}
	if p.Terminal != nil && p.Terminal(row) {
		return zero, perr.Conflictf("cannot modify a finalized %s", p.Resource)
	}
	if in.Expected != nil && p.UpdatedAt != nil && !p.UpdatedAt(row).Equal(*in.Expected) {
		return zero, perr.WithField(perr.Conflictf("%s was modified since it was read", p.Resource), "expected_updated_at")
	}
	if err := repokit.RunMidHooks(ctx, q, in.Refs...); err != nil {
		return zero, err
	}
	return row, nil
}

func (p Policy[T]) visible(ctx context.Context, q repokit.Queryer, sc scope.Scope, id uuid.UUID,
	load func(context.Context, repokit.Queryer, uuid.UUID) (T, error), verb string,
) (T, error) {
	var zero T
	row, err := load(ctx, q, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) || perr.IsNoRows(err) {
			return zero, perr.NotFoundf("%s not found", p.Resource)
		}
		return zero, perr.FromPostgresf(err, "load %s", p.Resource)
	}
	if p.Deleted != nil && p.Deleted(row) {
		return zero, perr.NotFoundf("%s not found", p.Resource)
	}
	if !p.InScope(sc, row) {
		if p.Hide {
			return zero, perr.NotFoundf("%s not found", p.Resource)
		}
		return zero, perr.Authorizationf("not allowed to %s this %s", verb, p.Resource)
	}
	return row, nil
}

// Run executes fn in one transaction
// callers with an organization get it published for row level security
func Run(ctx context.Context, tx repokit.TxRunner, sc scope.Scope, fn func(ctx context.Context, q repokit.Queryer) error) error {
	if tid, err := sc.Tenant(); err == nil {
		return store.RunInTenant(ctx, tx, tid.String(), fn)
	}
	return tx.Tx(ctx, func(q repokit.Queryer) error { return fn(ctx, q) })
}

// CAS runs a write that must touch exactly one row
// the WHERE clause is expected to pin updated_at, so zero rows means a concurrent writer won
func CAS(ctx context.Context, q repokit.Queryer, resource, sql string, args ...any) error {
	err := store.ExecOne(ctx, q, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return perr.Conflictf("%s was modified concurrently", resource)
	}
	return perr.FromPostgresf(err, "write %s", resource)
}

// Now is the default write clock
// stamps keep millisecond precision so an updated_at echoed back from the wire compares equal
func Now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
