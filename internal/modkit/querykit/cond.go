// Package querykit builds scoped predicates and paginates over them
// a predicate renders to postgres SQL and also evaluates over in-memory rows,
// so repos and their fakes run the very same filter
package querykit

import (
	"fmt"
	"strings"

	pstrings "rolegate/internal/platform/strings"
)

// Row is the in-memory view of one record keyed by column name
// link tables used by Exists are keyed "table.column" and hold a []any
type Row map[string]any

// Cond is a predicate node
type Cond interface {
	render(b *builder) string
	eval(r Row) bool
}

// builder numbers placeholders as conditions render
type builder struct {
	args []any
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Render returns the SQL for c with placeholders starting after the args already in args
func Render(c Cond, args []any) (string, []any) {
	b := &builder{args: append([]any(nil), args...)}
	if c == nil {
		return "TRUE", b.args
	}
	return c.render(b), b.args
}

// Match evaluates c over r; a nil condition matches everything
func Match(c Cond, r Row) bool {
	if c == nil {
		return true
	}
	return c.eval(r)
}

type op uint8

const (
	opEq op = iota
	opGte
	opLte
)

var opSQL = map[op]string{opEq: "=", opGte: ">=", opLte: "<="}

type comparison struct {
	col string
	op  op
	v   any
}

// Eq matches col = v
func Eq(col string, v any) Cond { return comparison{col: col, op: opEq, v: v} }

// Gte matches col >= v
func Gte(col string, v any) Cond { return comparison{col: col, op: opGte, v: v} }

// Lte matches col <= v
func Lte(col string, v any) Cond { return comparison{col: col, op: opLte, v: v} }

func (c comparison) render(b *builder) string {
	return c.col + " " + opSQL[c.op] + " " + b.arg(c.v)
}

func (c comparison) eval(r Row) bool {
	n, ok := compare(r[c.col], c.v)
	if !ok {
		return false
	}
	switch c.op {
	case opGte:
		return n >= 0
	case opLte:
		return n <= 0
	default:
		return n == 0
	}
}

type null struct {
	col string
	not bool
}

// IsNull matches rows where col is null
func IsNull(col string) Cond { return null{col: col} }

// NotNull matches rows where col is not null
func NotNull(col string) Cond { return null{col: col, not: true} }

func (c null) render(*builder) string {
	if c.not {
		return c.col + " IS NOT NULL"
	}
	return c.col + " IS NULL"
}

func (c null) eval(r Row) bool {
	isNull := normalize(r[c.col]) == nil
	return isNull != c.not
}

type junction struct {
	conds []Cond
	or    bool
}

// And conjoins conds; nil entries are skipped and an empty And is TRUE
func And(conds ...Cond) Cond { return junction{conds: compact(conds)} }

// Or disjoins conds; nil entries are skipped and an empty Or is FALSE
func Or(conds ...Cond) Cond { return junction{conds: compact(conds), or: true} }

func compact(conds []Cond) []Cond {
	out := make([]Cond, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (j junction) render(b *builder) string {
	if len(j.conds) == 0 {
		if j.or {
			return "FALSE"
		}
		return "TRUE"
	}
	if len(j.conds) == 1 {
		return j.conds[0].render(b)
	}
	sep := " AND "
	if j.or {
		sep = " OR "
	}
	parts := make([]string, len(j.conds))
	for i, c := range j.conds {
		parts[i] = c.render(b)
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func (j junction) eval(r Row) bool {
	for _, c := range j.conds {
		if c.eval(r) == j.or {
			return j.or
		}
	}
	return !j.or
}

type contains struct {
	cols []string
	term string
}

// Contains matches when any of cols holds term as a substring
// the term is NFC normalized and LIKE metacharacters match literally;
// matching is case insensitive (ILIKE) in both renderings
func Contains(term string, cols ...string) Cond {
	return contains{cols: cols, term: pstrings.NFC(term)}
}

func (c contains) render(b *builder) string {
	if len(c.cols) == 0 {
		return "FALSE"
	}
	p := b.arg("%" + pstrings.EscapeLike(c.term) + "%")
	parts := make([]string, len(c.cols))
	for i, col := range c.cols {
		parts[i] = col + " ILIKE " + p
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (c contains) eval(r Row) bool {
	for _, col := range c.cols {
		s, ok := normalize(r[col]).(string)
		if ok && pstrings.ContainsFold(s, c.term) {
			return true
		}
	}
	return false
}

type exists struct {
	table, fk, pk, col string
	v                  any
}

// Exists matches rows linked through table where table.fk = pk and table.col = v
// pk is the outer column, usually qualified like appointments.id
func Exists(table, fk, pk, col string, v any) Cond {
	return exists{table: table, fk: fk, pk: pk, col: col, v: v}
}

func (c exists) render(b *builder) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s l WHERE l.%s = %s AND l.%s = %s)",
		c.table, c.fk, c.pk, c.col, b.arg(c.v))
}

func (c exists) eval(r Row) bool {
	links, _ := r[c.table+"."+c.col].([]any)
	for _, l := range links {
		if n, ok := compare(l, c.v); ok && n == 0 {
			return true
		}
	}
	return false
}
