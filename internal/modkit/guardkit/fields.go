package guardkit

import (
	"context"
	"slices"

	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/repokit"
	perr "rolegate/internal/platform/errors"
	"rolegate/internal/platform/store"
)

// Immutable rejects a change to a field the payload may carry but the caller may never alter
// resending the current value is not a change
func Immutable[T comparable](field string, o dtokit.Opt[T], current T) error {
	if !o.Set() {
		return nil
	}
	if v, ok := o.Get(); ok && v == current {
		return nil
	}
	return perr.WithField(perr.Authorizationf("privilege escalation: %s cannot be changed", field), field)
}

// Unique fails with a conflict on field when the EXISTS query finds a row
// the database index still backs this up; a lost race surfaces as a duplicate key
func Unique(ctx context.Context, q repokit.Queryer, field, sql string, args ...any) error {
	taken, err := store.Scalar[bool](ctx, q, "SELECT EXISTS ("+sql+")", args...)
	if err != nil {
		return perr.FromPostgresf(err, "check %s", field)
	}
	if taken {
		return perr.WithField(perr.Conflictf("%s is already taken", field), field)
	}
	return nil
}

// Machine lists the allowed transitions of a status field
// states without outgoing edges are terminal
type Machine[S comparable] map[S][]S

// Terminal reports whether s has no way out
func (m Machine[S]) Terminal(s S) bool { return len(m[s]) == 0 }

// Allow checks from -> to; staying put is always allowed
func (m Machine[S]) Allow(field string, from, to S) error {
	if from == to || slices.Contains(m[from], to) {
		return nil
	}
	return perr.WithField(perr.Conflictf("cannot move %s from %v to %v", field, from, to), field)
}

// Known reports whether s is a state of the machine
func (m Machine[S]) Known(s S) bool {
	_, ok := m[s]
	return ok
}
