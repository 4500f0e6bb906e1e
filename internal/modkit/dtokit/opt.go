package dtokit

import (
	"bytes"
	"encoding/json"
)

// Opt is a tri-state JSON field: absent, explicit null, or a value
// the zero value is absent
type Opt[T any] struct {
	set  bool
	null bool
	v    T
}

// Some returns an Opt holding v
func Some[T any](v T) Opt[T] { return Opt[T]{set: true, v: v} }

// Null returns an explicit null Opt
func Null[T any]() Opt[T] { return Opt[T]{set: true, null: true} }

// Set reports whether the field appeared in the payload, null included
func (o Opt[T]) Set() bool { return o.set }

// IsNull reports whether the field was an explicit null
func (o Opt[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and whether one is present
func (o Opt[T]) Get() (T, bool) { return o.v, o.set && !o.null }

// Or returns the value or def when absent or null
func (o Opt[T]) Or(def T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return def
}

// Ptr returns a pointer to the value, nil when absent or null
func (o Opt[T]) Ptr() *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

// IsZero lets `omitzero` drop absent fields on encode
func (o Opt[T]) IsZero() bool { return !o.set }

// UnmarshalJSON implements json.Unmarshaler
// it only runs when the key is present, which is what separates absent from null
func (o *Opt[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.null = true
		var zero T
		o.v = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(b, &o.v)
}

// MarshalJSON implements json.Marshaler
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if v, ok := o.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// inner lets rules reach the value without knowing T
func (o Opt[T]) inner() (any, bool, bool) { return o.v, o.set, o.null }

type opt interface{ inner() (any, bool, bool) }
