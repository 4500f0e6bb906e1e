// Package dtokit maps storage rows to wire records through a declarative per field policy table
// and carries the tri-state Opt used by filter and patch payloads
package dtokit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ISO8601 is the wire layout for every timestamp, always rendered in UTC
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

// Policy fixes how a null source value appears on the wire
type Policy uint8

const (
	// Nullable keeps the key and renders null
	Nullable Policy = iota
	// Optional drops the key
	Optional
)

// Field is one row of a mapping table
type Field[T any] struct {
	Key    string
	Policy Policy
	Get    func(T) any
}

// F is shorthand for a Field literal
func F[T any](key string, p Policy, get func(T) any) Field[T] {
	return Field[T]{Key: key, Policy: p, Get: get}
}

// Mapper converts rows of T into Records
// it is pure: the same row always maps to an equal Record
type Mapper[T any] struct {
	fields []Field[T]
}

// NewMapper builds a Mapper and panics on an empty or duplicate key or a nil getter
func NewMapper[T any](fields ...Field[T]) Mapper[T] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Key == "" || f.Get == nil {
			panic("dtokit: field needs a key and a getter")
		}
		if _, dup := seen[f.Key]; dup {
			panic(fmt.Sprintf("dtokit: duplicate field %q", f.Key))
		}
		seen[f.Key] = struct{}{}
	}
	return Mapper[T]{fields: append([]Field[T](nil), fields...)}
}

// Map converts one row
func (m Mapper[T]) Map(row T) Record {
	rec := Record{keys: make([]string, 0, len(m.fields)), vals: make(map[string]any, len(m.fields))}
	for _, f := range m.fields {
		v := Wire(f.Get(row))
		if v == nil && f.Policy == Optional {
			continue
		}
		rec.keys = append(rec.keys, f.Key)
		rec.vals[f.Key] = v
	}
	return rec
}

// MapAll converts rows in order; the result is never nil
func (m Mapper[T]) MapAll(rows []T) []Record {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.Map(r))
	}
	return out
}

// Keys lists the table keys in declaration order
func (m Mapper[T]) Keys() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.Key
	}
	return out
}

// Wire normalizes a storage value into its wire form; nil means null
func Wire(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return x.UTC().Format(ISO8601)
	case *time.Time:
		if x == nil {
			return nil
		}
		return Wire(*x)
	case uuid.UUID:
		return x.String()
	case uuid.NullUUID:
		if !x.Valid {
			return nil
		}
		return x.UUID.String()
	case *uuid.UUID:
		if x == nil {
			return nil
		}
		return x.String()
	case decimal.Decimal:
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return nil
		}
		return x.Decimal.String()
	case opt:
		inner, set, null := x.inner()
		if !set || null {
			return nil
		}
		return Wire(inner)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return Wire(rv.Elem().Interface())
	}
	return v
}

// Record is an ordered wire object
type Record struct {
	keys []string
	vals map[string]any
}

// Get returns the value stored under key
func (r Record) Get(key string) (any, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the rendered keys in order
func (r Record) Keys() []string { return append([]string(nil), r.keys...) }

// MarshalJSON renders keys in table order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, fmt.Errorf("dtokit: field %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
