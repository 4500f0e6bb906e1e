package querykit

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"rolegate/internal/platform/store"
)

// Source yields the rows matching a condition one window at a time
type Source[T any] interface {
	Count(ctx context.Context, where Cond) (int, error)
	Fetch(ctx context.Context, where Cond, s Sort, w Window) ([]T, error)
}

// Paginate counts then fetches the window
// an empty result skips the fetch and still reports pagination
// count and fetch do not share a snapshot, so concurrent writes may skew records against data
func Paginate[T any](ctx context.Context, src Source[T], where Cond, s Sort, w Window) (Page[T], error) {
	n, err := src.Count(ctx, where)
	if err != nil {
		return Page[T]{}, err
	}
	p := Page[T]{Data: []T{}, Pagination: NewPagination(w, n)}
	if n == 0 || w.Offset() >= n {
		return p, nil
	}
	rows, err := src.Fetch(ctx, where, s, w)
	if err != nil {
		return Page[T]{}, err
	}
	p.Data = rows
	return p, nil
}

// PGSource reads a single table through a store querier
type PGSource[T any] struct {
	Q       store.RowQuerier
	Table   string
	Columns []string
	Scan    func(store.Row) (T, error)
}

// Count runs SELECT count(*) under where
func (s PGSource[T]) Count(ctx context.Context, where Cond) (int, error) {
	sql, args := Render(where, nil)
	n, err := store.Scalar[int64](ctx, s.Q, "SELECT count(*) FROM "+s.Table+" WHERE "+sql, args...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.Table, err)
	}
	return int(n), nil
}

// Fetch selects one ordered window under where
func (s PGSource[T]) Fetch(ctx context.Context, where Cond, srt Sort, w Window) ([]T, error) {
	sql, args := Render(where, nil)
	args = append(args, w.Limit, w.Offset())
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		strings.Join(s.Columns, ", "), s.Table, sql, srt.SQL(), len(args)-1, len(args))
	out, err := store.Many(ctx, s.Q, s.Scan, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Table, err)
	}
	return out, nil
}

// MemSource evaluates the same conditions over an in-memory slice
// Fields exposes an item as a Row, link tables included
type MemSource[T any] struct {
	Rows   []T
	Fields func(T) Row
}

func (s MemSource[T]) match(where Cond) []T {
	out := make([]T, 0, len(s.Rows))
	for _, r := range s.Rows {
		if Match(where, s.Fields(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of matching rows
func (s MemSource[T]) Count(_ context.Context, where Cond) (int, error) {
	return len(s.match(where)), nil
}

// Fetch sorts the matching rows and slices the window
func (s MemSource[T]) Fetch(_ context.Context, where Cond, srt Sort, w Window) ([]T, error) {
	rows := s.match(where)
	slices.SortStableFunc(rows, func(a, b T) int {
		ra, rb := s.Fields(a), s.Fields(b)
		switch {
		case srt.Less(ra, rb):
			return -1
		case srt.Less(rb, ra):
			return 1
		}
		return 0
	})
	lo := min(w.Offset(), len(rows))
	return rows[lo : lo+min(max(w.Limit, 0), len(rows)-lo)], nil
}
