// Package strings provides string helpers shared by routing and query building
package strings

import (
	std "strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /diary or /billing
// ensures a single leading slash and no trailing slash except for the root itself
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// IsBlank reports whether s has no non whitespace content
func IsBlank(s string) bool { return std.TrimSpace(s) == "" }

// NFC trims s and returns its canonical composed form so that
// "é" typed as one rune or as e plus a combining accent compare equal
func NFC(s string) string { return norm.NFC.String(std.TrimSpace(s)) }

var folder = cases.Fold()

// Fold returns the NFC form of s with Unicode case folding applied
// Used for in-memory substring matching that mirrors ILIKE
func Fold(s string) string { return folder.String(NFC(s)) }

// ContainsFold reports whether sub appears in s ignoring case and normalization form
func ContainsFold(s, sub string) bool { return std.Contains(Fold(s), Fold(sub)) }

// EscapeLike escapes the LIKE metacharacters so user input matches literally
func EscapeLike(s string) string {
	r := std.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" if ps is nil, else *ps.
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// IfEmpty returns def when v has no elements
func IfEmpty[T any](v, def []T) []T {
	if len(v) == 0 {
		return def
	}
	return v
}
