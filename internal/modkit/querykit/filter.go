package querykit

import (
	"rolegate/internal/modkit/dtokit"
	"rolegate/internal/modkit/scope"
	pstrings "rolegate/internal/platform/strings"
)

// Exact adds col = v when o holds a value; absent and explicit null add nothing
func Exact[T any](col string, o dtokit.Opt[T]) Cond {
	if v, ok := o.Get(); ok {
		return Eq(col, v)
	}
	return nil
}

// ExactOrNull is Exact for fields where an explicit null means "col IS NULL"
func ExactOrNull[T any](col string, o dtokit.Opt[T]) Cond {
	if o.IsNull() {
		return IsNull(col)
	}
	return Exact(col, o)
}

// Range adds inclusive bounds on col; either bound may be given alone
func Range[T any](col string, from, to dtokit.Opt[T]) Cond {
	var lo, hi Cond
	if v, ok := from.Get(); ok {
		lo = Gte(col, v)
	}
	if v, ok := to.Get(); ok {
		hi = Lte(col, v)
	}
	switch {
	case lo == nil && hi == nil:
		return nil
	case lo == nil:
		return hi
	case hi == nil:
		return lo
	}
	return And(lo, hi)
}

// Search adds a substring match of term over cols combined with OR
// a blank term adds nothing
func Search(term dtokit.Opt[string], cols ...string) Cond {
	s, ok := term.Get()
	if !ok || pstrings.IsBlank(s) {
		return nil
	}
	return Contains(s, cols...)
}

// Strategy restricts a query to the rows a caller may see
// exactly one strategy applies per endpoint
type Strategy interface {
	Cond(s scope.Scope) (Cond, error)
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(s scope.Scope) (Cond, error)

// Cond calls f
func (f StrategyFunc) Cond(s scope.Scope) (Cond, error) { return f(s) }

// Owner scopes rows to col = principal id
func Owner(col string) Strategy {
	return StrategyFunc(func(s scope.Scope) (Cond, error) {
		return Eq(col, s.Principal.ID), nil
	})
}

// Assigned scopes rows to those linked to the principal through a link table
func Assigned(table, fk, pk, col string) Strategy {
	return StrategyFunc(func(s scope.Scope) (Cond, error) {
		return Exists(table, fk, pk, col, s.Principal.ID), nil
	})
}

// Tenant scopes rows to col = the caller's organization
func Tenant(col string) Strategy {
	return StrategyFunc(func(s scope.Scope) (Cond, error) {
		tid, err := s.Tenant()
		if err != nil {
			return nil, err
		}
		return Eq(col, tid), nil
	})
}

// All conjoins strategies; the first failing one wins
func All(strategies ...Strategy) Strategy {
	return StrategyFunc(func(s scope.Scope) (Cond, error) {
		conds := make([]Cond, 0, len(strategies))
		for _, st := range strategies {
			c, err := st.Cond(s)
			if err != nil {
				return nil, err
			}
			conds = append(conds, c)
		}
		return And(conds...), nil
	})
}

// Spec is the fixed per endpoint half of a list query
// SoftDelete names the tombstone column; empty means the table hard deletes
type Spec struct {
	SoftDelete string
	Scope      Strategy
}

// Build conjoins the tombstone filter, the scope clause and the caller filters
// includeArchived brings soft deleted rows back in; scope still applies
func (s Spec) Build(sc scope.Scope, includeArchived bool, filters ...Cond) (Cond, error) {
	if s.Scope == nil {
		panic("querykit: spec needs a scope strategy")
	}
	scoped, err := s.Scope.Cond(sc)
	if err != nil {
		return nil, err
	}
	conds := make([]Cond, 0, len(filters)+2)
	if s.SoftDelete != "" && !includeArchived {
		conds = append(conds, IsNull(s.SoftDelete))
	}
	conds = append(conds, scoped)
	conds = append(conds, filters...)
	return And(conds...), nil
}
